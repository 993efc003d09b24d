//go:build tools
// +build tools

// Package tools documents the development tooling for the identity service.
// None of it is a runtime dependency, so nothing here lands in go.mod; each
// tool is installed globally with `go install`.
package tools

// Air restarts the server on save while iterating locally against a
// disposable redis:
//
//   go install github.com/air-verse/air@v1.63.0
//   https://github.com/air-verse/air
