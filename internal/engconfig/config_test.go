package engconfig

import (
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `# scan tunables
scan-ms = 50
iter-cap = 500
persist-edge-mirrors = true
`
	cfg, err := Parse(strings.NewReader(input), Default())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.ScanMS != 50 {
		t.Errorf("ScanMS got: %d wanted: 50", cfg.ScanMS)
	}
	if cfg.IterCap != 500 {
		t.Errorf("IterCap got: %d wanted: 500", cfg.IterCap)
	}
	if !cfg.PersistEdgeMirrors {
		t.Errorf("PersistEdgeMirrors got false wanted true")
	}
}

func TestParseIgnoresBlankAndCommentLines(t *testing.T) {
	input := "\n# a comment\n\nscan-ms = 20\n"
	cfg, err := Parse(strings.NewReader(input), Default())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.ScanMS != 20 {
		t.Errorf("ScanMS got: %d wanted: 20", cfg.ScanMS)
	}
}

func TestParseRejectsUnknownOption(t *testing.T) {
	if _, err := Parse(strings.NewReader("bogus = 1\n"), Default()); err == nil {
		t.Errorf("Parse did not error on an unknown option")
	}
}

func TestParseRejectsMissingEquals(t *testing.T) {
	if _, err := Parse(strings.NewReader("scan-ms 50\n"), Default()); err == nil {
		t.Errorf("Parse did not error on a line missing '='")
	}
}

func TestParseRejectsMalformedValue(t *testing.T) {
	if _, err := Parse(strings.NewReader("scan-ms = not-a-number\n"), Default()); err == nil {
		t.Errorf("Parse did not error on a malformed scan-ms value")
	}
}
