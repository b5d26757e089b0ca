package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/textlens/internal/model"
)

func TestRenderStatsText(t *testing.T) {
	limit := 10
	cfg := model.AnalysisConfig{CharLimit: &limit}
	var buf bytes.Buffer
	if err := RenderStats(&buf, FormatText, Recompute(ambassador, cfg), cfg); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Total Characters: 32",
		"Word Count: 5",
		"Sentence Count: 1",
		"Approx. reading time: 2 seconds",
		"Character limit: 10 (exceeds limit)",
		"Letter Density",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderStatsJSONAndYAML(t *testing.T) {
	derived := Recompute("Hi. Hi!", model.AnalysisConfig{})

	var jsonBuf bytes.Buffer
	if err := RenderStats(&jsonBuf, FormatJSON, derived, model.AnalysisConfig{}); err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded model.DerivedStats
	if err := json.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.SentenceCount != 2 || decoded.LetterFrequencies[0].Letter != "h" {
		t.Fatalf("unexpected json payload: %s", jsonBuf.String())
	}

	var yamlBuf bytes.Buffer
	if err := RenderStats(&yamlBuf, FormatYAML, derived, model.AnalysisConfig{}); err != nil {
		t.Fatalf("render yaml: %v", err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if fromYAML["wordCount"] != 2 {
		t.Fatalf("expected wordCount 2 in yaml, got %v", fromYAML["wordCount"])
	}
}

func TestRenderStatsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderStats(&buf, "xml", model.DerivedStats{}, model.AnalysisConfig{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestBar(t *testing.T) {
	cases := []struct {
		pct   string
		width int
		want  int
	}{
		{"50.00%", 10, 5},
		{"100.00%", 4, 4},
		{"0.00%", 10, 0},
		{"bogus", 10, 0},
		{"50.00%", 0, 0},
	}
	for _, tc := range cases {
		got := Bar(tc.pct, tc.width)
		if n := strings.Count(got, barGlyph); n != tc.want {
			t.Fatalf("Bar(%q, %d) has %d cells, want %d", tc.pct, tc.width, n, tc.want)
		}
	}
}
