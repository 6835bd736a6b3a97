// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidBody is returned when a request body is neither valid JSON
	// nor a parsable form.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrInvalidID is returned when a path identifier is not a positive
	// integer. It maps to 404 like any other unknown resource.
	ErrInvalidID = errors.New("invalid resource id")

	// ErrNoSessionInContext means an authenticated route ran without the
	// session middleware.
	ErrNoSessionInContext = errors.New("no session in request context")
)
