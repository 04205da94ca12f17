package contract

import (
	"fmt"

	"github.com/huangsam/recordlens/schema"
	"github.com/spf13/viper"
)

// LoadReferenceProfiles reads a YAML or JSON reference file. The format is
// picked from the file extension.
func LoadReferenceProfiles(path string) (*schema.ReferenceProfileSet, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read references %s: %w", path, err)
	}
	var raw ReferencesRawInput
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode references %s: %w", path, err)
	}
	refs, err := schema.NewReferenceProfileSet(raw.Profiles, raw.ReadinessTable)
	if err != nil {
		return nil, fmt.Errorf("invalid references %s: %w", path, err)
	}
	return refs, nil
}
