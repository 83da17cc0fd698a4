package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PersonaFile is the on-disk shape of a persona override.
type PersonaFile struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

// LoadPersona reads a persona override. An empty path returns (nil, nil).
func LoadPersona(path string) (*PersonaFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	var persona PersonaFile
	if err := yaml.Unmarshal(raw, &persona); err != nil {
		return nil, fmt.Errorf("parse persona file: %w", err)
	}
	if strings.TrimSpace(persona.SystemPrompt) == "" {
		return nil, fmt.Errorf("persona file %s has an empty system_prompt", path)
	}
	return &persona, nil
}
