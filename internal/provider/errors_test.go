package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "Missing", KindMissing.String())
	assert.Equal(t, "Empty", KindEmpty.String())
	assert.Equal(t, "WhiteSpace", KindWhiteSpace.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestErrorMatchesOnlyItsSentinel(t *testing.T) {
	err := &Error{Key: "EmailTemplatesPath", Kind: KindEmpty}

	assert.True(t, errors.Is(err, ErrEmpty))
	assert.False(t, errors.Is(err, ErrMissing))
	assert.False(t, errors.Is(err, ErrWhiteSpace))
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("load settings: %w", &Error{Key: "db1", Connection: true, Kind: KindMissing})

	assert.Equal(t, KindMissing, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrMissing))
	assert.Equal(t, Kind(0), KindOf(errors.New("boom")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{
			err:  &Error{Key: "EmailTemplatesPath", Kind: KindMissing},
			want: "The configuration setting with the Key: EmailTemplatesPath is Missing in the configuration file. This setting is a Required setting",
		},
		{
			err:  &Error{Key: "PaymentGatewayServiceUrl", Kind: KindWhiteSpace},
			want: "The configuration setting with the Key: PaymentGatewayServiceUrl is White Spaces. This setting is a Required setting",
		},
		{
			err:  &Error{Key: "db1", Connection: true, Kind: KindMissing},
			want: "The ConnectionString setting with the Name: db1 is Missing in the configuration file. This setting is a Required setting",
		},
		{
			err:  &Error{Key: "db1", Field: FieldProviderName, Connection: true, Kind: KindEmpty},
			want: "The ProviderName of the ConnectionString setting with the Name: db1 is Empty. This setting is a Required setting",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
