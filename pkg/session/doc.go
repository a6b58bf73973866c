// Package session keeps each browser's current selection and analysis in an
// expiring in-memory store keyed by a random cookie.
package session
