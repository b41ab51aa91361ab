package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"india_travel/internal/domain"
)

//go:embed data/destinations.yaml
var embeddedDataset []byte

type dataset struct {
	Destinations []domain.Destination `yaml:"destinations"`
}

// EmbeddedSource serves the dataset compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(context.Context) ([]domain.Destination, error) {
	return decode(embeddedDataset)
}

// FileSource reads a dataset in the embedded format from disk.
type FileSource struct{ Path string }

func (s FileSource) Load(context.Context) ([]domain.Destination, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.Path, err)
	}
	return decode(b)
}

func decode(b []byte) ([]domain.Destination, error) {
	var ds dataset
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if len(ds.Destinations) == 0 {
		return nil, fmt.Errorf("decode dataset: no destinations")
	}
	return ds.Destinations, nil
}
