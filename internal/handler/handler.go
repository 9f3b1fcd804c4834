// Package handler turns HTTP requests into service calls.
//
// Every resource endpoint goes through Handle: the payload is bound and
// validated first, and only a valid payload reaches the service layer.
package handler
