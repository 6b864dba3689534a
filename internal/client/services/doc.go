// Package services contains the application services of the BookUp client.
//
// Each service turns one area of the backend API into typed calls:
//   - AuthService: sign-in, registration, e-mail verification, OAuth
//   - CatalogService: books, genres, authors
//   - ShelfService: shelves and reading statistics
//   - ReviewService: reviews, likes, comments
//
// Services hold no state of their own. The session token lives in the
// tokens.Store shared with the API client.
package services
