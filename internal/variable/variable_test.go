package variable

import (
	"slices"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "no tokens", text: "Hello there", want: []string{}},
		{name: "dedup keeps first order", text: "{{a}}{{b}}{{a}}", want: []string{"a", "b"}},
		{name: "identifier chars", text: "Hi {{first_name}} #{{Order9}}", want: []string{"first_name", "Order9"}},
		{name: "empty name", text: "{{}}", want: []string{}},
		{name: "space inside", text: "{{ name }}", want: []string{}},
		{name: "unbalanced", text: "{{name} and {name}}", want: []string{}},
		{name: "hyphen", text: "{{first-name}}", want: []string{}},
		{name: "extra leading brace", text: "{{{a}}}", want: []string{"a"}},
		{name: "unterminated then valid", text: "{{a {{b}}", want: []string{"b"}},
		{name: "non ascii", text: "{{naïve}} {{ok}}", want: []string{"ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractAll(t *testing.T) {
	got := ExtractAll("Hi {{name}}", "{{name}}, enjoy {{discount}}", "", "{{unsubscribe}} {{discount}}")
	want := []string{"name", "discount", "unsubscribe"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractAllDoesNotJoinAcrossTexts(t *testing.T) {
	got := ExtractAll("{{na", "me}}")
	if len(got) != 0 {
		t.Fatalf("expected no variables, got %q", got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		bindings map[string]string
		want     string
	}{
		{
			name:     "unbound kept verbatim",
			text:     "Hi {{name}}, {{unknown}}",
			bindings: map[string]string{"name": "Sam"},
			want:     "Hi Sam, {{unknown}}",
		},
		{
			name:     "repeated token",
			text:     "{{a}}-{{a}}",
			bindings: map[string]string{"a": "x"},
			want:     "x-x",
		},
		{
			name:     "empty binding value",
			text:     "[{{a}}]",
			bindings: map[string]string{"a": ""},
			want:     "[]",
		},
		{
			name:     "malformed passthrough",
			text:     "{{ a }} {a} {{a}",
			bindings: map[string]string{"a": "x"},
			want:     "{{ a }} {a} {{a}",
		},
		{
			name:     "value with braces not rescanned",
			text:     "{{a}}{{b}}",
			bindings: map[string]string{"a": "{{b}}", "b": "B"},
			want:     "{{b}}B",
		},
		{
			name: "nil bindings",
			text: "Hello {{name}}",
			want: "Hello {{name}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.text, tt.bindings); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	text := "Hello {{name}}, enjoy {{discount}} off!"
	bindings := map[string]string{"name": "Lee", "discount": "10%"}
	first := Render(text, bindings)
	for range 10 {
		if got := Render(text, bindings); got != first {
			t.Fatalf("expected stable output %q, got %q", first, got)
		}
	}
	if first != "Hello Lee, enjoy 10% off!" {
		t.Fatalf("unexpected render %q", first)
	}
}
