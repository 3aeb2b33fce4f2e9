package zones

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML table override. Sections left empty in the file
// keep their default values, so an override can replace just one list.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zone table %s: %w", path, err)
	}

	var override Spec
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse zone table %s: %w", path, err)
	}

	spec := DefaultSpec()
	if len(override.Sanctions) > 0 {
		spec.Sanctions = override.Sanctions
	}
	if len(override.Conflict) > 0 {
		spec.Conflict = override.Conflict
	}
	if len(override.Maritime) > 0 {
		spec.Maritime = override.Maritime
	}
	if len(override.Piracy) > 0 {
		spec.Piracy = override.Piracy
	}
	for code, name := range override.Names {
		spec.Names[code] = name
	}

	return New(spec), nil
}
