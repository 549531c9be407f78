// Package security holds the gin middleware that guards every route:
// CSRF protection for form posts, browser security headers and the
// read-only switch that rejects writes.
package security
