package services

import "fmt"

const (
	pathLogin       = "/api/auth/login/"
	pathRegister    = "/api/auth/register/"
	pathVerifyUser  = "/api/auth/verify-user/"
	pathResendEmail = "/api/auth/resend-email/"
	pathBooks       = "/api/book/books/"
	pathGenres      = "/api/book/genres/"
	pathAuthors     = "/api/book/authors/"
	pathShelves     = "/api/shelf/shelves/"
	pathStats       = "/api/stats/stats/"
	pathReviews     = "/api/review/reviews/"
)

func bookPath(id int) string { return fmt.Sprintf("%s%d/", pathBooks, id) }

func shelfPath(id int, action string) string {
	return fmt.Sprintf("%s%d/%s/", pathShelves, id, action)
}

func reviewsPath(bookID int) string {
	return fmt.Sprintf("%s%d/reviews/", pathReviews, bookID)
}

func likePath(bookID, reviewID int) string {
	return fmt.Sprintf("%s%d/reviews/%d/like/", pathReviews, bookID, reviewID)
}

func commentsPath(reviewID int) string {
	return fmt.Sprintf("%s%d/comments/", pathReviews, reviewID)
}
