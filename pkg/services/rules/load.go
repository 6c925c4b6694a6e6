package rules

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads and validates the classification-rules document at path.
// Any failure here aborts initialization before a single row is processed.
func Load(path string) (*Ruleset, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rs Ruleset
	if err := v.Unmarshal(&rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}
