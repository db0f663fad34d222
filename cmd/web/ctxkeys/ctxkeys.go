// package ctxkeys holds typed request-context keys shared across handler
// packages.
package ctxkeys

type contextKey string

const (
	AccessLevel contextKey = "accessLevel"
)
