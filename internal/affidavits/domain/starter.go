package domain

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed starter_templates.yaml
var starterYAML []byte

type starterFile struct {
	Templates []Template `yaml:"templates"`
}

var (
	starterOnce      sync.Once
	starterTemplates []Template
	starterErr       error
)

// StarterPrefix prefixes ids of built-in templates, which have no database row.
const StarterPrefix = "starter:"

// StarterTemplates returns the built-in template table. The slice is a copy.
func StarterTemplates() ([]Template, error) {
	starterOnce.Do(func() {
		starterTemplates, starterErr = parseStarterTemplates(starterYAML)
	})
	if starterErr != nil {
		return nil, starterErr
	}
	return append([]Template(nil), starterTemplates...), nil
}

func parseStarterTemplates(raw []byte) ([]Template, error) {
	var file starterFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse starter templates: %w", err)
	}
	seen := make(map[string]bool, len(file.Templates))
	for i := range file.Templates {
		t := &file.Templates[i]
		key := NormalizeName(t.Name)
		if key == "" {
			return nil, fmt.Errorf("starter template %d has no name", i)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate starter template %q", t.Name)
		}
		seen[key] = true
		t.ID = StarterPrefix + key
		t.Origin = OriginStarter
		t.Active = true
		if t.Mode == "" {
			t.Mode = ModeStructured
		}
		if t.ServiceStatus == "" {
			t.ServiceStatus = ApplicableBoth
		}
	}
	return file.Templates, nil
}
