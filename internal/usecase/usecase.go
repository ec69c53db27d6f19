// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

// Attrs carries named attributes decoded from a request body.
type Attrs = map[string]any
