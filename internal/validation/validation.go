// Package validation binds and validates request data.
//
// Rules live in `validate` struct tags (required fields, lengths, email
// and URL formats) plus per-type Validate methods for rules tags cannot
// express. Failures become a 400 errs.HTTPError whose field errors use
// the names the client sent (json key, query or path param).
package validation
