package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"alfredoptarigan/resume-insights/internal/models"
)

const (
	PlaceholderSchema        = "schema_string"
	PlaceholderExtractedText = "extracted_text"
)

var tokenPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Token renders a placeholder name as it appears in a template.
func Token(name string) string {
	return "{" + name + "}"
}

// Compose substitutes every {name} token for the keys in values. The
// substitution is literal and single-pass: inserted text is never rescanned,
// and tokens without a value are left as they are.
func (pb *PromptBuilder) Compose(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	oldnew := make([]string, 0, len(values)*2)
	for _, k := range keys {
		oldnew = append(oldnew, Token(k), values[k])
	}

	return strings.NewReplacer(oldnew...).Replace(template)
}

// Validate reports MissingPlaceholder when a required token is absent.
func (pb *PromptBuilder) Validate(template string, required []string) error {
	var missing []string
	for _, name := range required {
		if !strings.Contains(template, Token(name)) {
			missing = append(missing, Token(name))
		}
	}

	if len(missing) > 0 {
		return models.NewPipelineError(models.ErrMissingPlaceholder,
			"Prompt template is missing required placeholders",
			fmt.Errorf("missing %s", strings.Join(missing, ", ")))
	}
	return nil
}

// Unresolved lists tokens still present after composition, once each.
func (pb *PromptBuilder) Unresolved(prompt string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range tokenPattern.FindAllStringSubmatch(prompt, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	return out
}

// AppendSchema bakes the schema into the prompt for templates that carry no
// schema token of their own.
func (pb *PromptBuilder) AppendSchema(prompt, schemaText string) string {
	if schemaText == "" {
		return prompt
	}
	return fmt.Sprintf("%s\n\nUse the following schema to structure the extracted information:\n%s\n", prompt, schemaText)
}
