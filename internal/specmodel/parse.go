package specmodel

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sankum/simuforge/internal/errs"
)

// Parse decodes a YAML experiment document (spec.md §6.1) and
// validates it. Deserialisation failures are returned wrapped; semantic
// problems come back as *errs.SpecInvalid so callers can distinguish
// malformed documents from valid-but-rejected ones.
func Parse(data []byte) (*ExperimentSpec, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("simuforge: decoding experiment document: %w", err)
	}

	if doc.APIVersion != APIVersion {
		return nil, &errs.SpecInvalid{Field: "apiVersion", Reason: "expected " + APIVersion}
	}
	if doc.Kind != Kind {
		return nil, &errs.SpecInvalid{Field: "kind", Reason: "expected " + Kind}
	}

	spec := doc.Spec
	spec.Metadata = doc.Metadata

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}
