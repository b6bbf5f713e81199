package web

import "embed"

// StaticFiles embeds the balance checker page served by the api package.
//
//go:embed build
var StaticFiles embed.FS
