package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FromMap decodes a nested preference map (the web client's persisted
// local_settings object) into a typed snapshot. Keys that are missing keep
// their defaults; unknown keys are ignored. A null content warning filter
// decodes as the empty string.
func FromMap(raw map[string]any) (Settings, error) {
	s := DefaultSettings()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		TagName:          "mapstructure",
		ZeroFields:       false,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings map: %w", err)
	}
	return Normalize(s)
}

// MarshalYAML encodes a snapshot as a YAML document.
func MarshalYAML(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}

// UnmarshalYAML decodes a YAML document on top of the defaults and normalizes it.
func UnmarshalYAML(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return Normalize(s)
}
