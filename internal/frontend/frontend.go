// Package frontend embeds the static page that renders the gallery and the deck.
package frontend

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

func GetAssetFS() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
