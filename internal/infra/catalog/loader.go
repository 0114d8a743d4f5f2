package catalog

import (
	"bytes"
	"fmt"
	"os"

	"stamp-rally/internal/domain/reward"

	"gopkg.in/yaml.v3"
)

type file struct {
	Rewards []reward.Definition `yaml:"rewards"`
}

// Load returns the default catalog when path is empty, otherwise the table read from path.
func Load(path string) (*reward.Catalog, error) {
	if path == "" {
		return reward.DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reward catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*reward.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode reward catalog: %w", err)
	}

	c, err := reward.NewCatalog(f.Rewards)
	if err != nil {
		return nil, fmt.Errorf("invalid reward catalog: %w", err)
	}
	return c, nil
}
