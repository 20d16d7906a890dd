// Package web bundles the HTML templates and theme stylesheets.
package web

import "embed"

//go:embed templates static
var FS embed.FS
