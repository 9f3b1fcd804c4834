// Package validation binds request data and validates it before any
// business logic runs.
//
// It uses go-playground/validator struct tags, a registry of enumerated
// allow-lists shared by every payload, and converts failures into a 400
// *errs.HTTPError carrying field-level details.
package validation
