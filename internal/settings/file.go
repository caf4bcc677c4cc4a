package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned when a settings document cannot be decoded.
var ErrInvalidDocument = errors.New("invalid settings document")

// document represents the settings file structure.
type document struct {
	AppSettings       map[string]string           `yaml:"appSettings"`
	ConnectionStrings map[string]ConnectionRecord `yaml:"connectionStrings"`
}

// LoadFile reads a YAML settings document from path into a MemorySource.
func LoadFile(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML settings document. Unknown top-level sections are
// rejected so that typos such as "appSetting" do not silently hide values.
func Parse(data []byte) (*MemorySource, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	source := NewMemorySource()
	for key, value := range doc.AppSettings {
		source.SetValue(key, value)
	}
	for name, record := range doc.ConnectionStrings {
		source.SetConnection(name, record)
	}
	return source, nil
}
