package rag

import "errors"

// Error kinds for the agent pipelines. Steps wrap collaborator failures with
// one of these so callers (and tests) can classify degradation causes with
// errors.Is without depending on backend-specific error types.
var (
	// ErrRetrieval marks a vector-store/backend failure during retrieval.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrGeneration marks a reasoning-service failure, including empty or
	// unparseable model output.
	ErrGeneration = errors.New("generation failed")

	// ErrNotFound marks an unknown document id.
	ErrNotFound = errors.New("document not found")

	// ErrInsufficientInput marks a comparison request with fewer than 2
	// usable documents.
	ErrInsufficientInput = errors.New("insufficient documents for comparison")

	// ErrCanceled marks a request-scoped context cancellation, kept distinct
	// from a normal generation failure.
	ErrCanceled = errors.New("request canceled")
)
