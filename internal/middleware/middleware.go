// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, locale resolution, request logging, CORS,
// rate limiting, metrics, tracing and panic recovery.
package middleware
