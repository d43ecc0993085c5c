// Package naming owns the mask artifact naming convention: how a mask path
// is derived from its source and how generated masks are recognized so
// they are never fed back in as sources.
package naming
