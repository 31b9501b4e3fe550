package sanitize

import (
	"strings"
	"testing"
)

func TestHTML_StripsDangerousContent(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		badPart string
	}{
		{"script tag", `<p>ok</p><script>alert(1)</script>`, "<script"},
		{"event handler", `<p onclick="alert(1)">ok</p>`, "onclick"},
		{"javascript url", `<a href="javascript:alert(1)">x</a>`, "javascript:"},
		{"iframe", `<iframe src="https://evil.example"></iframe>`, "<iframe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := HTML(tt.input)
			if strings.Contains(out, tt.badPart) {
				t.Errorf("expected %q stripped from output, got %q", tt.badPart, out)
			}
		})
	}
}

func TestHTML_KeepsSafeFormatting(t *testing.T) {
	input := `<p class="align-center">Hello <strong>world</strong></p><ul><li>item</li></ul>`
	out := HTML(input)

	for _, want := range []string{"<strong>world</strong>", "<li>item</li>", `class="align-center"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q kept, got %q", want, out)
		}
	}
}

func TestHTML_Empty(t *testing.T) {
	if out := HTML(""); out != "" {
		t.Errorf("expected empty output for empty input, got %q", out)
	}
}
