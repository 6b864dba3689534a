// Package client talks to the BookUp REST backend.
//
// # Overview
//
// The package provides:
//  1. Client, a thin wrapper over net/http bound to one backend base URL. It
//     attaches "Authorization: Bearer <token>" when a token is available and
//     bounds every call with a timeout.
//  2. Get / GetAs for typed JSON reads, Post returning the raw Response so
//     callers can branch on the status code, and Delete.
//  3. FetchAll, which follows the "next" links of the backend's paginated
//     envelope and concatenates the results in page order.
//
// # Authorization
//
// A token placed in the request context with tokens.WithToken wins over the
// TokenSource given to New. With neither, the request goes out without an
// Authorization header.
//
// # Error Handling
//
// Failures are classified so callers can use errors.Is / errors.As:
//
//   - ErrNetwork: the request could not be sent or the response not read
//     (DNS, refused connection, timeout, cancelled context).
//   - ErrDecode: the body did not match the expected JSON shape.
//   - *HTTPError: a non-2xx status, with the body text.
//   - *ValidationError: per-field messages decoded from a 400 body.
//   - ErrPaginationCycle, ErrTooManyPages: FetchAll stopped following links.
//
// Nothing is retried.
package client
