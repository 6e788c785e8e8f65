package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	homedir.DisableCache = true
	t.Setenv("HOME", home)
	return home
}

func writeBlock(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 12, 10))
	for y := 3; y < 7; y++ {
		for x := 3; x < 7; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestSegmentAndHistory(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	input := writeBlock(t, dir, "cell.png")
	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	db := filepath.Join(dir, "history.sqlite")

	out, err := run(t, "segment", input, "--db", db, "--uniform", "--binary", "-o", outDir)
	if err != nil {
		t.Fatalf("segment: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "cell_seg.png")); err != nil {
		t.Fatalf("output not written: %v\n%s", err, out)
	}
	if !strings.Contains(out, "200.000") {
		t.Errorf("segment output lacks c1:\n%s", out)
	}

	out, err = run(t, "history", "--db", db)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, input) || !strings.Contains(out, "Split Bregman") {
		t.Errorf("history does not list the run:\n%s", out)
	}
}

func TestSegmentReportsFailures(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	_, err := run(t, "segment", filepath.Join(dir, "missing.png"), "--no-history")
	if err == nil {
		t.Fatal("expected an error for a missing input")
	}
}

func TestSegmentRejectsBadParameters(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	input := writeBlock(t, dir, "cell.png")
	if _, err := run(t, "segment", input, "--no-history", "--mu", "-1"); err == nil {
		t.Fatal("expected negative mu to be rejected")
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	home := isolateHome(t)
	cfg := "solver:\n  max_iterations: 7\nedges:\n  uniform: true\n"
	if err := os.WriteFile(filepath.Join(home, ".bregman-segmenter.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BSEG_ALGORITHM", "Mean Threshold")

	out, err := run(t, "algorithms")
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	if !strings.Contains(out, "Mean Threshold (selected)") {
		t.Errorf("env override not applied:\n%s", out)
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	isolateHome(t)
	if _, err := run(t, "algorithms", "--config", filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestAlgorithmsListsDefaults(t *testing.T) {
	isolateHome(t)
	out, err := run(t, "algorithms")
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	for _, want := range []string{"Split Bregman (selected)", "Mean Threshold", "lambda", "max_iterations"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestEdgesCommand(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	input := writeBlock(t, dir, "cell.png")

	out, err := run(t, "edges", input)
	if err != nil {
		t.Fatalf("edges: %v", err)
	}
	want := filepath.Join(dir, "cell_edges.png")
	if strings.TrimSpace(out) != want {
		t.Errorf("printed %q, want %q", out, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("edge map not written: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	isolateHome(t)
	db := filepath.Join(t.TempDir(), "h.sqlite")
	if _, err := run(t, "migrate", "--db", db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Errorf("database not created: %v", err)
	}
}
