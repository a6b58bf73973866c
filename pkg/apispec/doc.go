// Package apispec describes the HTTP API as an OpenAPI 3 document. Every
// document type contributes a submission schema listing the fields its
// reference data leaves empty.
package apispec
