package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	NoPositiveFactors = "No specific positive factors provided."
	NoNegativeFactors = "No specific negative factors provided."
)

var slotPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// PromptTemplate is a system/human message pair with {name} slots.
type PromptTemplate struct {
	System string
	Human  string
}

// Slots returns the sorted, de-duplicated slot names used by the template.
func (t PromptTemplate) Slots() []string {
	seen := make(map[string]struct{})
	for _, text := range []string{t.System, t.Human} {
		for _, m := range slotPattern.FindAllStringSubmatch(text, -1) {
			seen[m[1]] = struct{}{}
		}
	}

	slots := make([]string, 0, len(seen))
	for name := range seen {
		slots = append(slots, name)
	}
	sort.Strings(slots)
	return slots
}

// Render fills every slot from vars in a single pass, so substituted values
// are never expanded again. A slot without a variable is an error.
func (t PromptTemplate) Render(vars map[string]string) (system string, human string, err error) {
	var missing []string
	for _, name := range t.Slots() {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", "", fmt.Errorf("missing prompt variables: %s", strings.Join(missing, ", "))
	}

	fill := func(text string) string {
		return slotPattern.ReplaceAllStringFunc(text, func(slot string) string {
			return vars[slot[1:len(slot)-1]]
		})
	}

	return fill(t.System), fill(t.Human), nil
}

// OrPlaceholder returns value, or placeholder when value is blank.
func OrPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
