// Package oauth runs the browser sign-in handshake with Google and GitHub.
//
// A handshake has two halves. Init generates a random state nonce, stores
// it under the provider's key, clears any existing session and sends the
// user to the provider's consent page. When the provider redirects back,
// Callback checks the returned state against the stored nonce; only on a
// match does it trade the authorization code for a backend access token.
//
//	Idle -> Redirecting -> AwaitingCallback -> Validating
//	                                             |-> Rejected
//	                                             '-> Exchanging -> Authenticated
//	                                                            '-> ExchangeFailed
//
// CallbackServer is a loopback HTTP listener that receives the redirect for
// terminal clients.
package oauth
