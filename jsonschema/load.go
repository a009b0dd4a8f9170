package jsonschema

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Load reads and decodes the schema file name from fsys. The format is chosen
// from the extension: .json, .yaml or .yml.
func Load(fsys fs.FS, name string) (*Schema, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	var s *Schema
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".json":
		s, err = Parse(data)
	case ".yaml", ".yml":
		s, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("jsonschema: %s: format %q not supported", name, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}
