package domain

import "errors"

// ErrAuthentication is the single failure reported for bad credentials,
// unknown accounts, and disabled accounts. Callers must not be able to tell
// which case occurred.
var ErrAuthentication = errors.New("authentication failed")

// ErrPrincipalNotFound is internal to credential resolution and is mapped to
// ErrAuthentication before crossing the authentication boundary.
var ErrPrincipalNotFound = errors.New("principal not found")

var ErrMalformedToken = errors.New("malformed token")
var ErrSigning = errors.New("token signing misconfigured")

// ErrUpstreamUnavailable marks a failed call to the scheduling service.
var ErrUpstreamUnavailable = errors.New("scheduling service unavailable")

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrRoleNotFound = errors.New("role not found")

var ErrInvalidSortDirection = errors.New("invalid sort direction")
var ErrInvalidSortField = errors.New("invalid sort field")
