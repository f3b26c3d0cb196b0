// Package errors provides the classified error type used by the wikilink
// host packages (configuration, filesystem access, rendering).
//
// The wikilink core never returns errors: a text that is not a wiki link is
// a decline, not a failure. Errors only arise at the edges, where files are
// read and written and configuration is loaded.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "read page").
//		WithContext("path", path).
//		Build()
package errors
