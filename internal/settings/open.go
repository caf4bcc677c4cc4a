package settings

import (
	"errors"
	"fmt"
)

// Supported source kinds.
const (
	KindFile  = "file"
	KindViper = "viper"
)

// ErrUnknownSourceKind is returned by Open for an unsupported kind.
var ErrUnknownSourceKind = errors.New("unknown settings source kind")

// Open builds the Source named by kind. The file kind requires a path; the
// viper kind accepts an empty path and then reads the environment only.
func Open(kind, path, envPrefix string) (Source, error) {
	switch kind {
	case KindFile:
		if path == "" {
			return nil, fmt.Errorf("settings file path is required for the %s source", KindFile)
		}
		return LoadFile(path)
	case KindViper:
		return NewViperSource(path, envPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSourceKind, kind)
	}
}
