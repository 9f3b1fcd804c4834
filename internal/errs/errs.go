// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the service is an *HTTPError: a stable machine
// code, an error kind, a human readable (localized) message and optional
// field level details. The underlying cause is kept for logs only.
package errs
