package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const reasonRS3 = `<rst>
  <header><relations><rel name="reason" type="rst"/></relations></header>
  <body>
    <segment id="1" parent="2" relname="reason">Because it rained,</segment>
    <segment id="2" parent="3" relname="span">we stayed home.</segment>
    <group id="3" type="span"/>
  </body>
</rst>`

const brokenRS3 = `<rst><header><relations/></header><body>
  <segment id="1">a</segment><segment id="2">b</segment>
</body></rst>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RSTTACE_CONFIG", "")
	t.Setenv("RSTTACE_VERBOSE", "")
	t.Setenv("RSTTACE_OUTPUT_DIR", "")
	t.Setenv("RSTTACE_FORMATS", "")
	t.Chdir(t.TempDir())

	configPath, logLevel = "", ""
	analyseOutput, analyseVerbose = "", false
	compareOutput, compareMetrics, compareVerbose = "", "", false
	evaluateOutput, evaluateFormats, evaluateVerbose = "", nil, false

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return stdout.String(), err
}

func TestAnalyse_Console(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.rs3", reasonRS3)
	out, err := execute(t, "analyse", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "reason") {
		t.Errorf("expected relation table on stdout, got %q", out)
	}
}

func TestAnalyse_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.rs3", reasonRS3)
	target := filepath.Join(dir, "out", "doc.csv")
	out, err := execute(t, "analyse", path, "-o", target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected no console output without -v, got %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestAnalyse_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.rs3", brokenRS3)
	if _, err := execute(t, "analyse", broken); err == nil {
		t.Error("expected error for malformed document")
	}
	if _, err := execute(t, "analyse", filepath.Join(dir, "missing.rs3")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := execute(t, "analyse"); err == nil {
		t.Error("expected error without argument")
	}
}

func TestCompare_FileAndVerbose(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.rs3", reasonRS3)
	b := writeFile(t, dir, "b.rs3", reasonRS3)
	comp := filepath.Join(dir, "comp.csv")
	metrics := filepath.Join(dir, "metrics.csv")

	out, err := execute(t, "compare", a, b, "-o", comp, "--metrics", metrics, "-v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Completely identical CS") {
		t.Errorf("expected comparison on stdout with -v, got %q", out)
	}
	for _, p := range []string{comp, metrics} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
}

func TestCompare_MetricsWithoutCSVOutput(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.rs3", reasonRS3)
	b := writeFile(t, dir, "b.rs3", reasonRS3)

	metrics := filepath.Join(dir, "only_metrics.csv")
	out, err := execute(t, "compare", a, b, "--metrics", metrics)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Completely identical CS") {
		t.Errorf("expected comparison on stdout without -o, got %q", out)
	}
	if _, err := os.Stat(metrics); err != nil {
		t.Errorf("expected metrics file without -o: %v", err)
	}

	page := filepath.Join(dir, "comp.html")
	metrics = filepath.Join(dir, "html_metrics.csv")
	if _, err := execute(t, "compare", a, b, "-o", page, "--metrics", metrics); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []string{page, metrics} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}
}

func TestEvaluate(t *testing.T) {
	root := t.TempDir()
	dirA, dirB := filepath.Join(root, "a"), filepath.Join(root, "b")
	writeFile(t, dirA, "doc1.rs3", reasonRS3)
	writeFile(t, dirB, "doc1.rs3", reasonRS3)
	writeFile(t, dirA, "doc2.rs3", reasonRS3)
	writeFile(t, dirB, "doc2.rs3", brokenRS3)
	writeFile(t, dirA, "only_a.rs3", reasonRS3)
	writeFile(t, dirA, "notes.txt", "ignored")

	outDir := filepath.Join(root, "results")
	if _, err := execute(t, "evaluate", dirA, dirB, "-o", outDir, "--format", "csv,html"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"doc1_comparison.csv", "doc1_metrics.csv", "doc1_comparison.html", "evaluation.csv", "evaluation.html"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "doc2_comparison.csv")); err == nil {
		t.Error("expected no report for the failed pair")
	}
}

func TestEvaluate_Errors(t *testing.T) {
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	writeFile(t, dirA, "doc.rs3", reasonRS3)

	if _, err := execute(t, "evaluate", dirA, filepath.Join(root, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, err := execute(t, "evaluate", dirA, dirA, "--format", "pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLogLevelFlag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.rs3", reasonRS3)
	if _, err := execute(t, "analyse", path, "--log-level", "loud"); err == nil {
		t.Error("expected validation error for unknown log level")
	}
}
