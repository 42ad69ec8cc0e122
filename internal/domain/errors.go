package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrAnchorNotFound is returned when the anchor search yields no products
	ErrAnchorNotFound = errors.New("anchor product not found")

	// ErrSearchFailure is returned when the product search service request fails
	ErrSearchFailure = errors.New("product search request failed")

	// ErrImageNotFound is returned when no image can be resolved for a product
	ErrImageNotFound = errors.New("product image not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrEnrichmentUnavailable is returned when the enricher is disabled or not configured
	ErrEnrichmentUnavailable = errors.New("feature enrichment unavailable")

	// ErrMalformedEnrichment is returned when the enricher output cannot be turned into features
	ErrMalformedEnrichment = errors.New("malformed enrichment result")

	// ErrRateLimited is returned when an upstream rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
