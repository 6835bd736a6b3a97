// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service/logger setup.
func buildRouter() *chi.Mux {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	router := chi.NewRouter()
	router.Post("/login", ok)
	router.Route("/api/expenses", func(r chi.Router) {
		r.Get("/", ok)
		r.Post("/", ok)
		r.Get("/{id}", ok)
		r.Delete("/{id}", ok)
	})

	router.NotFound(NotFoundJSON)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedAllow  string
	}{
		{
			name:           "registered method passes through",
			method:         http.MethodPost,
			path:           "/login",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong method on a top-level route",
			method:         http.MethodGet,
			path:           "/login",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedAllow:  "POST",
		},
		{
			name:           "wrong method on a mounted route",
			method:         http.MethodPut,
			path:           "/api/expenses",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedAllow:  "GET, POST",
		},
		{
			name:           "wrong method on a parameterised route",
			method:         http.MethodPut,
			path:           "/api/expenses/7",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedAllow:  "GET, DELETE",
		},
		{
			name:           "trailing slash on a mounted route",
			method:         http.MethodPatch,
			path:           "/api/expenses/",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedAllow:  "GET, POST",
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/nowhere",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown path below a mounted route",
			method:         http.MethodPut,
			path:           "/api/expenses/7/receipts",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectedAllow, rr.Header().Get("Allow"))
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
				assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, http.StatusText(tt.expectedStatus)), rr.Body.String())
			}
		})
	}
}

func TestMatchSegments(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{pattern: "/api/expenses", path: "/api/expenses", want: true},
		{pattern: "/api/expenses/{id}", path: "/api/expenses/7", want: true},
		{pattern: "/api/expenses/{id}", path: "/api/expenses", want: false},
		{pattern: "/api/expenses/{id}", path: "/api/expenses/7/x", want: false},
		{pattern: "/static/*", path: "/static/css/app.css", want: true},
		{pattern: "/", path: "/", want: true},
		{pattern: "/", path: "/login", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			got := matchSegments(splitPath(trimSlash(tt.pattern)), splitPath(trimSlash(tt.path)))
			assert.Equal(t, tt.want, got)
		})
	}
}
