package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

const (
	appSettingsSection       = "appSettings"
	connectionStringsSection = "connectionStrings"
	connectionStringField    = "connectionString"
	providerNameField        = "providerName"
)

// ViperSource reads settings through viper, so a settings file can be
// overridden by environment variables such as
// PREFIX_APPSETTINGS_EMAILTEMPLATESPATH or
// PREFIX_CONNECTIONSTRINGS_DB1_PROVIDERNAME. Keys are case-insensitive.
type ViperSource struct {
	v *viper.Viper
}

// NewViperSource builds a source from the file at path (yaml, json or toml by
// extension). An empty path yields an environment-only source.
func NewViperSource(path, envPrefix string) (*ViperSource, error) {
	v := viper.New()
	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings file %s: %w", path, err)
		}
	}

	return &ViperSource{v: v}, nil
}

// Get returns the raw value of an app setting.
func (s *ViperSource) Get(key string) (string, bool) {
	path := appSettingsSection + "." + key
	if !s.v.IsSet(path) {
		return "", false
	}
	return s.v.GetString(path), true
}

// ConnectionRecord returns the raw connection record stored under name. A
// record exists when its section or either of its fields is set.
func (s *ViperSource) ConnectionRecord(name string) (ConnectionRecord, bool) {
	base := connectionStringsSection + "." + name
	connPath := base + "." + connectionStringField
	providerPath := base + "." + providerNameField

	if !s.v.IsSet(base) && !s.v.IsSet(connPath) && !s.v.IsSet(providerPath) {
		return ConnectionRecord{}, false
	}

	return ConnectionRecord{
		ConnectionString: s.v.GetString(connPath),
		ProviderName:     s.v.GetString(providerPath),
	}, true
}

// ConnectionNames returns the sorted names of the connection records found in
// the settings file. Names come back lower-cased because viper folds key case;
// lookups through ConnectionRecord are case-insensitive, so they still resolve.
// Records defined only through environment variables are not listed.
func (s *ViperSource) ConnectionNames() []string {
	section := s.v.GetStringMap(connectionStringsSection)
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
