// Package repository implements persistence for user and role records on
// top of a key-hash store. Sentinel errors defined here let the service
// layer distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrKeyNotFound is returned by Get when the requested key does not
// exist in the collection. Higher layers translate it into their own
// not-found or invalid-credentials outcomes.
var ErrKeyNotFound = errors.New("key not found")
