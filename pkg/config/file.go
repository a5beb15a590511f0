package config

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"
)

// ApplyFile overlays the values of a YAML config file onto the current
// configuration. Keys absent from the file keep their previous values.
func (c *ReporterConfig) ApplyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "unable to read config file %s", path)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return errors.Wrapf(err, "unable to parse config file %s", path)
	}
	return nil
}
