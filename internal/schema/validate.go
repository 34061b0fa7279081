package schema

import (
	"fmt"
	"strings"
)

// Versions the store accepts
var recognizedVersions = map[string]bool{
	"v2": true,
	"v3": true,
}

// ValidationError itemized problems found in a candidate document
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid schema document: " + strings.Join(e.Problems, "; ")
}

// Validate checks a candidate document and returns every problem found,
// human-readable, one entry per violation. An empty slice means valid.
func Validate(doc Document) []string {
	var problems []string

	if doc == nil {
		return []string{"document must be a JSON object"}
	}

	version, ok := doc["schema_version"].(string)
	if !ok || version == "" {
		problems = append(problems, "missing schema_version")
	} else if !recognizedVersions[version] {
		problems = append(problems, fmt.Sprintf("unrecognized schema_version %q", version))
	}

	rawComponents, present := doc["components"]
	if !present {
		problems = append(problems, "missing components mapping")
		return problems
	}

	components, ok := rawComponents.(map[string]interface{})
	if !ok {
		problems = append(problems, "components must be a mapping of category to template list")
		return problems
	}

	for slug, v := range components {
		list, ok := v.([]interface{})
		if !ok {
			problems = append(problems, fmt.Sprintf("category %q must map to a list of templates", slug))
			continue
		}
		if len(list) == 0 {
			problems = append(problems, fmt.Sprintf("category %q has an empty template list", slug))
			continue
		}
		for i, item := range list {
			if _, ok := item.(map[string]interface{}); !ok {
				problems = append(problems, fmt.Sprintf("category %q template %d is not an object", slug, i))
			}
		}
	}

	return problems
}
