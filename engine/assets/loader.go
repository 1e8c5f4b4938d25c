package assets

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/renderer/metadata"
)

// Loader reads a document produced by the document layer.
type Loader interface {
	Load(path string) (*metadata.Document, error)
}

// JSONLoader reads the "{scene_graph, meshes}" JSON the document layer emits.
type JSONLoader struct{}

func (JSONLoader) Load(path string) (*metadata.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// DecodeDocument parses one document and checks that it has a placement tree.
func DecodeDocument(r io.Reader) (*metadata.Document, error) {
	doc := &metadata.Document{}
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, err
	}
	if doc.SceneGraph == nil {
		return nil, core.ErrEmptyDocument
	}
	if doc.Meshes == nil {
		doc.Meshes = make(map[string]*metadata.MeshData)
	}
	for solid, m := range doc.Meshes {
		if m == nil {
			delete(doc.Meshes, solid)
			continue
		}
		if len(m.Positions)%3 != 0 || len(m.Indices)%3 != 0 {
			core.LogWarn("solid '%s' has a partial vertex or triangle (positions=%d, indices=%d)", solid, len(m.Positions), len(m.Indices))
		}
	}
	return doc, nil
}

// SaveDocument writes doc in the same JSON form Load reads.
func SaveDocument(path string, doc *metadata.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
