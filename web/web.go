// Package web embeds the viewer and control panel.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Assets is the static directory with its prefix stripped.
func Assets() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}
