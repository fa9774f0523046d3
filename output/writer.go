// Package output writes the artifacts of a parse to disk.
package output

import (
	"os"
	"path/filepath"

	"github.com/hesusruiz/mdparser/mdparser"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	Directory string

	ASTFilename  string
	JSONFilename string
	HTMLFilename string

	EnableAST  bool
	EnableJSON bool
	EnableHTML bool
}

func DefaultConfig() Config {
	return Config{
		Directory:    "output",
		ASTFilename:  "ast.txt",
		JSONFilename: "ast.json",
		HTMLFilename: "output.html",
		EnableAST:    true,
		EnableJSON:   true,
		EnableHTML:   true,
	}
}

// Artifact is a file written by the Writer.
type Artifact struct {
	Path string
	Size int64
}

// DocumentRenderer produces a complete HTML page for a document.
type DocumentRenderer interface {
	Document(nodes []mdparser.Node) ([]byte, error)
}

type Writer struct {
	cfg Config
	log *zap.SugaredLogger
}

func NewWriter(cfg Config, log *zap.SugaredLogger) *Writer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Writer{cfg: cfg, log: log}
}

// Dump returns the AST in a readable text form, without terminal colors.
func Dump(nodes []mdparser.Node) []byte {
	pp.ColoringEnabled = false
	return []byte(pp.Sprintln(nodes))
}

// WriteAll writes every enabled artifact into the output directory. The
// renderer is only called when HTML output is enabled.
func (w *Writer) WriteAll(nodes []mdparser.Node, renderer DocumentRenderer) ([]Artifact, error) {
	var artifacts []Artifact

	if !w.cfg.EnableAST && !w.cfg.EnableJSON && !w.cfg.EnableHTML {
		return artifacts, nil
	}

	if err := os.MkdirAll(w.cfg.Directory, 0750); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", w.cfg.Directory)
	}

	if w.cfg.EnableAST {
		a, err := w.write(w.cfg.ASTFilename, Dump(nodes))
		if err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, a)
	}

	if w.cfg.EnableJSON {
		data, err := mdparser.MarshalNodes(nodes)
		if err != nil {
			return artifacts, err
		}
		a, err := w.write(w.cfg.JSONFilename, data)
		if err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, a)
	}

	if w.cfg.EnableHTML && renderer != nil {
		data, err := renderer.Document(nodes)
		if err != nil {
			return artifacts, errors.Wrap(err, "rendering HTML")
		}
		a, err := w.write(w.cfg.HTMLFilename, data)
		if err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, nil
}

func (w *Writer) write(name string, data []byte) (Artifact, error) {
	path := filepath.Join(w.cfg.Directory, name)
	if err := os.WriteFile(path, data, 0664); err != nil {
		return Artifact{}, errors.Wrapf(err, "writing %s", path)
	}
	w.log.Debugw("artifact written", "path", path, "bytes", len(data))
	return Artifact{Path: path, Size: int64(len(data))}, nil
}
