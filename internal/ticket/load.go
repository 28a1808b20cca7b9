package ticket

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Tickets []Ticket `yaml:"tickets"`
}

// LoadCatalog reads a YAML ticket catalog from path. An empty path selects
// the built-in tickets.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(Builtin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticket catalog: %w", err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes a YAML document of the form {tickets: [...]}.
// Unknown fields are rejected so typos do not silently drop data.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var file catalogFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode ticket catalog: %w", err)
	}
	return NewCatalog(file.Tickets)
}
