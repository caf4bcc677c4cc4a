package settings

// Source provides raw access to scalar settings and connection records.
// The boolean result reports whether the key or record exists at all.
type Source interface {
	Get(key string) (string, bool)
	ConnectionRecord(name string) (ConnectionRecord, bool)
}

// ConnectionRecord is a raw connection string entry as stored by a Source.
type ConnectionRecord struct {
	ConnectionString string `yaml:"connectionString" mapstructure:"connectionString"`
	ProviderName     string `yaml:"providerName" mapstructure:"providerName"`
}

// Lister is implemented by sources that can enumerate their connection records.
type Lister interface {
	ConnectionNames() []string
}
