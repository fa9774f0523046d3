package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hesusruiz/mdparser/mdparser"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Document(nodes []mdparser.Node) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("<html></html>"), nil
}

func sampleNodes() []mdparser.Node {
	return []mdparser.Node{
		mdparser.Heading{Level: 1, Content: []mdparser.Inline{mdparser.Text{Content: "Title"}}},
		mdparser.HorizontalRule{},
	}
}

func TestWriteAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = filepath.Join(t.TempDir(), "nested", "out")

	r := &fakeRenderer{}
	artifacts, err := NewWriter(cfg, nil).WriteAll(sampleNodes(), r)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)
	assert.Equal(t, 1, r.calls)

	names := []string{"ast.txt", "ast.json", "output.html"}
	for i, a := range artifacts {
		assert.Equal(t, filepath.Join(cfg.Directory, names[i]), a.Path)
		info, err := os.Stat(a.Path)
		require.NoError(t, err)
		assert.Equal(t, info.Size(), a.Size)
	}

	data, err := os.ReadFile(artifacts[1].Path)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "heading", decoded[0]["type"])
	assert.Equal(t, "horizontal_rule", decoded[1]["type"])

	html, err := os.ReadFile(artifacts[2].Path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(html))
}

func TestWriteAllRespectsSwitches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()
	cfg.EnableAST = false
	cfg.EnableHTML = false

	r := &fakeRenderer{}
	artifacts, err := NewWriter(cfg, nil).WriteAll(sampleNodes(), r)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, filepath.Join(cfg.Directory, "ast.json"), artifacts[0].Path)
	assert.Zero(t, r.calls)

	cfg.EnableJSON = false
	cfg.Directory = filepath.Join(t.TempDir(), "never")
	artifacts, err = NewWriter(cfg, nil).WriteAll(sampleNodes(), r)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
	_, err = os.Stat(cfg.Directory)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAllRenderError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Directory = t.TempDir()

	artifacts, err := NewWriter(cfg, nil).WriteAll(sampleNodes(), &fakeRenderer{err: errors.New("no template")})
	require.Error(t, err)
	assert.Equal(t, "rendering HTML: no template", err.Error())
	assert.Len(t, artifacts, 2)
}

func TestWriteAllDirectoryError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0664))

	cfg := DefaultConfig()
	cfg.Directory = file
	_, err := NewWriter(cfg, nil).WriteAll(sampleNodes(), nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "creating output directory"))
}

func TestDump(t *testing.T) {
	out := string(Dump(sampleNodes()))
	assert.Contains(t, out, "mdparser.Heading{")
	assert.Contains(t, out, `"Title"`)
	assert.Contains(t, out, "mdparser.HorizontalRule{}")
	assert.NotContains(t, out, "\x1b[")
}
