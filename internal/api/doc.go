// Package api implements the HTTP command router.
//
// The server exposes device discovery and the ECP translator operations as
// a JSON API for browser clients. Every response uses a uniform envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "..."}
//
// The router is pure dispatch. Discovery semantics live in the discovery
// package and device communication in the ecp package; handlers validate
// input, call through, and map the translator's error taxonomy onto HTTP
// status codes (timeouts to 504, other device failures to 502, malformed
// requests to 400).
//
// A WebSocket endpoint per device streams the foreground-app state so the
// browser remote can track what's playing without polling the API itself.
package api
