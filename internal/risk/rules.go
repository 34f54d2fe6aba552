package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules extends the built-in dictionaries. Keys of Keywords must be one of
// the four category names; unknown categories are rejected at load time.
//
//	keywords:
//	  legal: ["unterlassungserklärung"]
//	  complaint: ["nie wieder bestellen"]
//	critical: ["unterlassungserklärung"]
type Rules struct {
	Keywords map[string][]string `yaml:"keywords"`
	Critical []string            `yaml:"critical"`
}

var knownCategories = map[string]struct{}{
	"legal": {}, "safety": {}, "refund": {}, "complaint": {},
}

// LoadRules reads a YAML rules file.
func LoadRules(path string) (Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read risk rules: %w", err)
	}
	var r Rules
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Rules{}, fmt.Errorf("parse risk rules %s: %w", path, err)
	}
	for cat := range r.Keywords {
		if _, ok := knownCategories[cat]; !ok {
			return Rules{}, fmt.Errorf("risk rules %s: unknown category %q", path, cat)
		}
	}
	return r, nil
}
