package frontend

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetFS(t *testing.T) {
	fsys, err := GetAssetFS()
	require.NoError(t, err)

	index, err := fs.ReadFile(fsys, "index.html")
	require.NoError(t, err)
	assert.Contains(t, string(index), "Welcome to the Multiverse PokeAPI!")
	assert.Contains(t, string(index), "app.js")

	_, err = fs.Stat(fsys, "app.js")
	assert.NoError(t, err)
	_, err = fs.Stat(fsys, "style.css")
	assert.NoError(t, err)
}
