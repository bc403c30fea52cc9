// Package web embeds the HTML templates and static assets served by the app.
package web

import "embed"

// Templates holds the page templates, parsed by the HTTP server at startup
//
//go:embed templates/*.html
var Templates embed.FS

// Static holds stylesheets served under /css
//
//go:embed static
var Static embed.FS
