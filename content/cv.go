package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpupo63/portfolio-site/models"
)

// LoadCV reads the CV data file. Unknown keys are rejected so typos surface.
func LoadCV(path string) (*models.CV, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV file '%s': %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cv models.CV
	if err := dec.Decode(&cv); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse CV file '%s': %w", path, err)
	}
	if cv.Profile.Name == "" {
		return nil, fmt.Errorf("CV file '%s': profile.name is required", path)
	}
	return &cv, nil
}
