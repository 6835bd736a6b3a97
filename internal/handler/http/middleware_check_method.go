// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-expense-ledger/internal/utils"
	"github.com/MKhiriev/go-expense-ledger/models"
)

var routableMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// endpoint is one leaf route of the router with the methods registered on it.
type endpoint struct {
	segments []string
	methods  map[string]bool
}

// CheckHTTPMethod returns a handler meant for [chi.Mux.MethodNotAllowed].
//
// The accepted methods are collected from the leaf routes reported by
// [chi.Walk], so a sub-router mounted under a prefix only contributes the
// methods of the endpoint that actually matches. A path that accepts none is
// answered with 404; otherwise the response is 405 with an Allow header.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	// routes are registered before the first request is served
	endpoints := sync.OnceValue(func() []endpoint { return collectEndpoints(router) })

	return func(w http.ResponseWriter, r *http.Request) {
		allowed := allowedMethods(endpoints(), r.URL.Path)
		if len(allowed) == 0 {
			NotFoundJSON(w, r)
			return
		}

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)}, http.StatusMethodNotAllowed)
	}
}

// NotFoundJSON answers unknown paths with the same JSON error body the API
// uses everywhere else. Register it with [chi.Mux.NotFound].
func NotFoundJSON(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}

func collectEndpoints(router chi.Routes) []endpoint {
	byPattern := make(map[string]*endpoint)

	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		pattern := trimSlash(route)
		ep, ok := byPattern[pattern]
		if !ok {
			ep = &endpoint{segments: splitPath(pattern), methods: make(map[string]bool)}
			byPattern[pattern] = ep
		}
		ep.methods[method] = true
		return nil
	})

	endpoints := make([]endpoint, 0, len(byPattern))
	for _, ep := range byPattern {
		endpoints = append(endpoints, *ep)
	}
	return endpoints
}

func allowedMethods(endpoints []endpoint, path string) []string {
	segments := splitPath(trimSlash(path))

	accepted := make(map[string]bool)
	for _, ep := range endpoints {
		if matchSegments(ep.segments, segments) {
			for m := range ep.methods {
				accepted[m] = true
			}
		}
	}

	var allowed []string
	for _, m := range routableMethods {
		if accepted[m] {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

// matchSegments reports whether a request path fits a chi pattern. A segment
// holding a {param} matches any non-empty segment; a trailing * matches the rest.
func matchSegments(pattern, path []string) bool {
	for i, p := range pattern {
		if p == "*" && i == len(pattern)-1 {
			return true
		}
		if i >= len(path) {
			return false
		}
		switch {
		case strings.Contains(p, "{"):
			if path[i] == "" {
				return false
			}
		case p != path[i]:
			return false
		}
	}
	return len(pattern) == len(path)
}

func trimSlash(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}
	return path
}

func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
