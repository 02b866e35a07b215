package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults are served when a configuration document was never saved.
type Defaults struct {
	Categories        Categories     `yaml:"categories"`
	Payment           PaymentDetails `yaml:"payment"`
	SubscriptionPlans Plans          `yaml:"subscriptionPlans"`
	About             About          `yaml:"about"`
}

// LoadDefaults parses the embedded defaults. Each call returns a fresh copy.
func LoadDefaults() (*Defaults, error) {
	var d Defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return nil, fmt.Errorf("parse settings defaults: %w", err)
	}
	return &d, nil
}

// MustDefaults is LoadDefaults for callers that cannot recover from a
// broken embedded file.
func MustDefaults() *Defaults {
	d, err := LoadDefaults()
	if err != nil {
		panic(err)
	}
	return d
}
