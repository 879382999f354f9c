package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/socialcaution/cautiond/internal/domain"
)

// personaFile is the on-disk shape of the persona catalog.
type personaFile struct {
	Personas []domain.Persona `yaml:"personas"`
}

// cautionFile is the on-disk shape of the caution catalog.
type cautionFile struct {
	Cautions []domain.CautionItem `yaml:"cautions"`
}

// Load reads the persona and caution catalogs from their YAML files and
// returns a validated Catalog.
func Load(personasPath, cautionsPath string) (*Catalog, error) {
	pData, err := os.ReadFile(personasPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona catalog: %w", err)
	}

	var pf personaFile
	if err := yaml.Unmarshal(pData, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse persona catalog YAML: %w", err)
	}

	cData, err := os.ReadFile(cautionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read caution catalog: %w", err)
	}

	var cf cautionFile
	if err := yaml.Unmarshal(cData, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse caution catalog YAML: %w", err)
	}

	return New(pf.Personas, cf.Cautions)
}
