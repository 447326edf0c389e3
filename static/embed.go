// Package staticfiles embeds the client assets so the server binary
// ships self-contained. Set DECKBUILDER_DEV_STATIC to serve from disk
// instead during development.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

// EmbeddedFS exposes the compiled-in assets for the static file server.
func EmbeddedFS() fs.FS {
	return embedded
}
