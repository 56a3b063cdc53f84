package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/fundops/internal/domain"
)

// LoadMocksManifest reads and validates the mocks manifest at path
func LoadMocksManifest(path string) (*domain.MocksManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mocks manifest: %w", err)
	}

	var manifest domain.MocksManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse mocks manifest %s: %w", path, err)
	}

	if err := validator.New().Struct(&manifest); err != nil {
		return nil, fmt.Errorf("invalid mocks manifest %s: %w", path, err)
	}
	return &manifest, nil
}

// LoadMocksManifestIfExists is LoadMocksManifest that returns nil for a missing file
func LoadMocksManifestIfExists(path string) (*domain.MocksManifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadMocksManifest(path)
}
