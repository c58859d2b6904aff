package web

import "embed"

// StaticFS holds the embedded static assets, rooted at static/.
//
//go:embed static
var StaticFS embed.FS
