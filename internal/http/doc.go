// Package http exposes the JSON API. PublicAPI serves the marketing site
// reads plus enrollment submission; AdminAPI serves the authenticated
// dashboard CRUD surface.
package http
