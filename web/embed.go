// Package web embeds the static assets served at /static/ on both the
// public site and the admin.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree. Docker builds compile
// TailwindCSS and vendor HTMX/AlpineJS into it before the Go build runs;
// a local checkout may only carry the input.css source.
//
//go:embed all:static
var StaticFS embed.FS
