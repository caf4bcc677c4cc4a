package provider

import (
	"errors"
	"fmt"
)

// Kind identifies which validation stage rejected a value.
type Kind int

const (
	// KindMissing means the key or connection record is absent from the source.
	KindMissing Kind = iota + 1
	// KindEmpty means the value is present but zero-length.
	KindEmpty
	// KindWhiteSpace means the value consists only of whitespace.
	KindWhiteSpace
)

var (
	// ErrMissing matches every *Error of KindMissing.
	ErrMissing = errors.New("setting is missing")
	// ErrEmpty matches every *Error of KindEmpty.
	ErrEmpty = errors.New("setting is empty")
	// ErrWhiteSpace matches every *Error of KindWhiteSpace.
	ErrWhiteSpace = errors.New("setting is white spaces")
	// ErrUnknownSetting is returned by Setting for keys the provider does not know.
	ErrUnknownSetting = errors.New("unknown setting")
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "Missing"
	case KindEmpty:
		return "Empty"
	case KindWhiteSpace:
		return "WhiteSpace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// phrase is the fixed wording used in error messages.
func (k Kind) phrase() string {
	switch k {
	case KindMissing:
		return "is Missing in the configuration file"
	case KindEmpty:
		return "is Empty"
	case KindWhiteSpace:
		return "is White Spaces"
	default:
		return "is Invalid"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindMissing:
		return ErrMissing
	case KindEmpty:
		return ErrEmpty
	case KindWhiteSpace:
		return ErrWhiteSpace
	default:
		return nil
	}
}

// Error reports a setting or connection record that failed validation.
// Connection is true for connection records, in which case Key holds the
// connection name and Field names the offending field, if any.
type Error struct {
	Key        string
	Field      string
	Connection bool
	Kind       Kind
}

func (e *Error) Error() string {
	switch {
	case e.Connection && e.Field != "":
		return fmt.Sprintf("The %s of the ConnectionString setting with the Name: %s %s. This setting is a Required setting",
			e.Field, e.Key, e.Kind.phrase())
	case e.Connection:
		return fmt.Sprintf("The ConnectionString setting with the Name: %s %s. This setting is a Required setting",
			e.Key, e.Kind.phrase())
	default:
		return fmt.Sprintf("The configuration setting with the Key: %s %s. This setting is a Required setting",
			e.Key, e.Kind.phrase())
	}
}

// Is makes errors.Is match the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// KindOf returns the Kind carried by err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind
	}
	return 0
}
