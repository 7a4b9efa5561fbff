// Package xmlschema is an optional, separately importable validation layer
// built entirely on xmlcore's public API. It never reaches into xmlcore's
// internals and is not required to parse, query, or mutate a document.
package xmlschema

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/lucidxml/xmlcore/xmlcore"
)

// Rule is one validation clause: path names the location (an xpath
// understood by xmlcore.Document.Query/QueryAll), and the remaining fields
// constrain what's found there. Type is one of "", "array", "int", "float",
// or "string"; "" performs only the presence/Required check.
type Rule struct {
	Path     string
	Required bool
	Type     string
	Min      float64
	Max      float64
	Regex    string
	Enum     []string
}

// Validate runs every rule against doc and returns one message per
// violation. An empty result means doc satisfies every rule.
func Validate(doc *xmlcore.Document, rules []Rule) []string {
	var errs []string
	for _, r := range rules {
		errs = append(errs, validateRule(doc, r)...)
	}
	return errs
}

func validateRule(doc *xmlcore.Document, r Rule) []string {
	var errs []string
	var matches []*xmlcore.Tag
	_ = doc.QueryAll(r.Path, func(t *xmlcore.Tag, attr string) bool {
		matches = append(matches, t)
		return true
	})

	if len(matches) == 0 {
		if r.Required {
			errs = append(errs, "missing: "+r.Path)
		}
		return errs
	}

	if r.Type == "array" {
		if len(matches) < 2 {
			errs = append(errs, fmt.Sprintf("%s must match more than one node", r.Path))
		}
		return errs
	}

	for _, t := range matches {
		errs = append(errs, validateValue(r, r.Path, valueOf(t))...)
	}
	return errs
}

func valueOf(t *xmlcore.Tag) string {
	if t.IsContentLike() {
		return t.Text()
	}
	var text string
	for _, c := range t.Children() {
		if c.Kind() == xmlcore.KindContentNode {
			text += c.Text()
		}
	}
	return text
}

func validateValue(r Rule, path, strVal string) []string {
	var errs []string
	switch r.Type {
	case "int", "float":
		f, err := strconv.ParseFloat(strVal, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be numeric", path))
			return errs
		}
		if r.Min != 0 && f < r.Min {
			errs = append(errs, fmt.Sprintf("%s value %.2f is less than minimum %.2f", path, f, r.Min))
		}
		if r.Max != 0 && f > r.Max {
			errs = append(errs, fmt.Sprintf("%s value %.2f is greater than maximum %.2f", path, f, r.Max))
		}
	case "string", "":
		if r.Regex != "" {
			matched, _ := regexp.MatchString(r.Regex, strVal)
			if !matched {
				errs = append(errs, fmt.Sprintf("%s invalid format (regex %q)", path, r.Regex))
			}
		}
		if len(r.Enum) > 0 {
			found := false
			for _, allowed := range r.Enum {
				if strVal == allowed {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Sprintf("%s invalid value %q, allowed: %v", path, strVal, r.Enum))
			}
		}
	}
	return errs
}
