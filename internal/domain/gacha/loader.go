package gacha

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile mirrors the YAML schema of a catalog file.
type catalogFile struct {
	Version  string   `yaml:"version"`
	Tiers    []Tier   `yaml:"tiers"`
	Entries  []Entry  `yaml:"entries"`
	Fortunes []string `yaml:"fortunes"`
	Advice   []string `yaml:"advice"`
}

// LoadCatalog reads a YAML catalog file and validates it through NewCatalog.
// Any invariant violation surfaces here, once, at load time.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gacha: read catalog %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("gacha: parse catalog %s: %w", path, err)
	}
	c, err := NewCatalog(f.Tiers, f.Entries, f.Fortunes, f.Advice)
	if err != nil {
		return nil, fmt.Errorf("gacha: catalog %s: %w", path, err)
	}
	return c, nil
}
