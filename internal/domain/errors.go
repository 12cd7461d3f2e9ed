package domain

import "errors"

var (
	// ErrProviderFailure is returned when a shopping-search provider request fails
	ErrProviderFailure = errors.New("shopping-search provider request failed")

	// ErrNoResults is returned when a search yields no usable offers
	ErrNoResults = errors.New("no products found")

	// ErrUnparsableItems is returned when the item extractor output cannot be parsed
	ErrUnparsableItems = errors.New("could not parse items from request")

	// ErrNoTextDetected is returned when OCR finds no text in an image
	ErrNoTextDetected = errors.New("no text detected in image")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
