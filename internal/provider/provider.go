package provider

import (
	"fmt"
	"sort"

	"github.com/eugenenazirov/settings-provider/internal/settings"
)

// Setting keys known to the provider.
const (
	KeyEmailTemplatesPath       = "EmailTemplatesPath"
	KeyPaymentGatewayServiceURL = "PaymentGatewayServiceUrl"
)

// Connection record field names used in error reports.
const (
	FieldConnectionString = "ConnectionString"
	FieldProviderName     = "ProviderName"
)

var normalizers = map[string]Normalizer{
	KeyEmailTemplatesPath:       EnsureLeadingBackslash,
	KeyPaymentGatewayServiceURL: EnsureTrailingSlash,
}

// DBConnectionInformation is a validated connection descriptor. All fields
// are non-empty.
type DBConnectionInformation struct {
	Name             string
	ConnectionString string
	ProviderName     string
}

// Provider validates and normalises values read from a settings.Source.
type Provider struct {
	source settings.Source
}

// New constructs a Provider reading from source.
func New(source settings.Source) *Provider {
	return &Provider{source: source}
}

// EmailTemplatesPath returns the email templates path, always starting with `\`.
func (p *Provider) EmailTemplatesPath() (string, error) {
	return p.setting(KeyEmailTemplatesPath, EnsureLeadingBackslash)
}

// PaymentGatewayServiceURL returns the payment gateway base URL, always ending with "/".
func (p *Provider) PaymentGatewayServiceURL() (string, error) {
	return p.setting(KeyPaymentGatewayServiceURL, EnsureTrailingSlash)
}

// Setting returns the validated value of any known setting.
func (p *Provider) Setting(key string) (string, error) {
	normalize, ok := normalizers[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	return p.setting(key, normalize)
}

// KnownSettings lists the keys accepted by Setting in sorted order.
func KnownSettings() []string {
	keys := make([]string, 0, len(normalizers))
	for key := range normalizers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (p *Provider) setting(key string, normalize Normalizer) (string, error) {
	raw, ok := p.source.Get(key)
	value, err := requireSetting(key, raw, ok)
	if err != nil {
		return "", err
	}
	return normalize(value), nil
}

// DBConnectionInformation looks up the connection record called name and
// returns it once both its connection string and provider name are set.
func (p *Provider) DBConnectionInformation(name string) (DBConnectionInformation, error) {
	record, ok := p.source.ConnectionRecord(name)
	if !ok {
		return DBConnectionInformation{}, &Error{Key: name, Connection: true, Kind: KindMissing}
	}
	if err := requireField(name, FieldConnectionString, record.ConnectionString); err != nil {
		return DBConnectionInformation{}, err
	}
	if err := requireField(name, FieldProviderName, record.ProviderName); err != nil {
		return DBConnectionInformation{}, err
	}

	return DBConnectionInformation{
		Name:             name,
		ConnectionString: record.ConnectionString,
		ProviderName:     record.ProviderName,
	}, nil
}
