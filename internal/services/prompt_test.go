package services

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"alfredoptarigan/resume-insights/internal/models"
)

func TestComposeEmptyMappingReturnsTemplate(t *testing.T) {
	pb := NewPromptBuilder()
	templates := []string{
		"",
		"plain prompt with no tokens",
		"keeps {extracted_text} verbatim",
	}
	for _, tmpl := range templates {
		if got := pb.Compose(tmpl, nil); got != tmpl {
			t.Errorf("Compose(%q, nil) = %q", tmpl, got)
		}
		if got := pb.Compose(tmpl, map[string]string{}); got != tmpl {
			t.Errorf("Compose(%q, {}) = %q", tmpl, got)
		}
	}
}

func TestCompose(t *testing.T) {
	pb := NewPromptBuilder()

	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{
			name:     "both placeholders",
			template: "Schema: {schema_string}\nText: {extracted_text}",
			values:   map[string]string{PlaceholderSchema: `{"a":1}`, PlaceholderExtractedText: "Alice"},
			want:     "Schema: {\"a\":1}\nText: Alice",
		},
		{
			name:     "repeated token replaced everywhere",
			template: "{extracted_text} / {extracted_text}",
			values:   map[string]string{PlaceholderExtractedText: "x"},
			want:     "x / x",
		},
		{
			name:     "unknown token left verbatim",
			template: "{job_title}: {extracted_text}",
			values:   map[string]string{PlaceholderExtractedText: "x"},
			want:     "{job_title}: x",
		},
		{
			name:     "value absent from template is ignored",
			template: "only text: {extracted_text}",
			values:   map[string]string{PlaceholderSchema: "S", PlaceholderExtractedText: "T"},
			want:     "only text: T",
		},
		{
			name:     "inserted text is not rescanned",
			template: "{extracted_text} | {schema_string}",
			values:   map[string]string{PlaceholderExtractedText: "literal {schema_string}", PlaceholderSchema: "S"},
			want:     "literal {schema_string} | S",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pb.Compose(tt.template, tt.values); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	pb := NewPromptBuilder()

	if err := pb.Validate("text: {extracted_text}", []string{PlaceholderExtractedText}); err != nil {
		t.Errorf("Validate() unexpected error = %v", err)
	}

	err := pb.Validate("no tokens here", []string{PlaceholderExtractedText, PlaceholderSchema})
	if !errors.Is(err, models.KindError(models.ErrMissingPlaceholder)) {
		t.Fatalf("Validate() error = %v, want MissingPlaceholder", err)
	}
	if !strings.Contains(err.Error(), "{extracted_text}") || !strings.Contains(err.Error(), "{schema_string}") {
		t.Errorf("error should name both tokens, got %q", err.Error())
	}
}

func TestUnresolved(t *testing.T) {
	pb := NewPromptBuilder()

	got := pb.Unresolved(`{"type":"object"} {job_title} and {job_title} then {extracted_text}`)
	want := []string{"job_title", "extracted_text"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unresolved() = %v, want %v", got, want)
	}

	if got := pb.Unresolved("nothing left"); len(got) != 0 {
		t.Errorf("Unresolved() = %v, want none", got)
	}
}

func TestAppendSchema(t *testing.T) {
	pb := NewPromptBuilder()

	if got := pb.AppendSchema("prompt", ""); got != "prompt" {
		t.Errorf("AppendSchema with empty schema = %q", got)
	}

	got := pb.AppendSchema("prompt", `{"name":"string"}`)
	if !strings.HasPrefix(got, "prompt\n\n") || !strings.Contains(got, `{"name":"string"}`) {
		t.Errorf("AppendSchema() = %q", got)
	}
}

func TestPresets(t *testing.T) {
	list := ListPresets()
	if len(list) != 2 || list[0].Name != DefaultPreset {
		t.Fatalf("ListPresets() = %+v", list)
	}

	insights, ok := GetPreset(PresetResumeInsights)
	if !ok || insights.Mode != models.ModeStructured {
		t.Fatalf("resume-insights preset = %+v, %v", insights, ok)
	}
	pb := NewPromptBuilder()
	if err := pb.Validate(insights.Template, []string{PlaceholderSchema, PlaceholderExtractedText}); err != nil {
		t.Errorf("resume-insights template: %v", err)
	}

	report, ok := GetPreset(PresetCareerReport)
	if !ok || report.Mode != models.ModeRaw {
		t.Fatalf("career-report preset = %+v, %v", report, ok)
	}
	if err := pb.Validate(report.Template, []string{PlaceholderExtractedText}); err != nil {
		t.Errorf("career-report template: %v", err)
	}

	if _, ok := GetPreset("nope"); ok {
		t.Error("GetPreset(nope) should not exist")
	}
}
