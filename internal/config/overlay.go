package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayDoc captures each top-level section of an overlay file without
// decoding it. Unknown keys are dropped.
type overlayDoc struct {
	Output   yaml.Node `yaml:"output"`
	Logging  yaml.Node `yaml:"logging"`
	Scenario yaml.Node `yaml:"scenario"`
	LLM      yaml.Node `yaml:"llm"`
	Cache    yaml.Node `yaml:"cache"`
	Server   yaml.Node `yaml:"server"`
}

// MergeOverlay applies the sections present in the YAML file at path to
// target. A present section replaces the target section as a whole, so
// fields it omits become zero; absent sections are left untouched.
func MergeOverlay(target *Config, path string) error {
	if target == nil {
		return errors.New("merging overlay into nil config")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading overlay %s: %w", path, err)
	}
	var doc overlayDoc
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing overlay %s: %w", path, err)
	}

	return errors.Join(
		replaceSection("output", &doc.Output, &target.Output),
		replaceSection("logging", &doc.Logging, &target.Logging),
		replaceSection("scenario", &doc.Scenario, &target.Scenario),
		replaceSection("llm", &doc.LLM, &target.LLM),
		replaceSection("cache", &doc.Cache, &target.Cache),
		replaceSection("server", &doc.Server, &target.Server),
	)
}

func replaceSection[T any](name string, node *yaml.Node, dst *T) error {
	if node.IsZero() {
		return nil
	}
	var section T
	if err := node.Decode(&section); err != nil {
		return fmt.Errorf("overlay section %s: %w", name, err)
	}
	*dst = section
	return nil
}
