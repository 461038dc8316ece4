package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	if !strings.HasPrefix(cmd.Use, "svgtint") {
		t.Errorf("Expected Use to start with 'svgtint', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected Short and Long descriptions to be set")
	}
	if !cmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	found := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		found[sub.Name()] = true
	}
	for _, name := range []string{"palette", "inspect", "watch", "version"} {
		if !found[name] {
			t.Errorf("Expected subcommand %s to be registered", name)
		}
	}
}

func TestRecolor(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "svg")
	output := filepath.Join(dir, "out")
	if err := os.MkdirAll(input, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(input, "icon.svg"), []byte(`<svg fill="black" stroke="white"/>`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, input, output, "#00b8cc", "0.2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Recolored 1 documents") {
		t.Errorf("Expected a summary line, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(output, "icon.svg"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := `<svg fill="var(--primary-l-82)" stroke="var(--primary-l-122)"/>`; string(data) != want {
		t.Errorf("icon.svg = %q, want %q", data, want)
	}
	if _, err := os.Stat(filepath.Join(output, "color_map.sass")); err != nil {
		t.Errorf("Expected color_map.sass in output: %v", err)
	}
}

func TestRecolorWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "icons")
	if err := os.MkdirAll(input, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(input, "a.svg"), []byte(`white`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	configPath := filepath.Join(dir, "svgtint.yaml")
	config := `input: ` + input + `
output: ` + filepath.Join(dir, "themed") + `
primary_color: "#00b8cc"
report: report.yaml
palette:
  levels: 255
  prefix: brand
  file: palette.css
log:
  environment: production
  level: warn
`
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := execute(t, "--config", configPath); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "themed", "a.svg"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "var(--brand-l-102)" {
		t.Errorf("a.svg = %q, want var(--brand-l-102)", data)
	}
	stylesheet, err := os.ReadFile(filepath.Join(dir, "themed", "palette.css"))
	if err != nil {
		t.Fatalf("read palette: %v", err)
	}
	if !strings.HasPrefix(string(stylesheet), ":root {\n  --brand-l-0: rgb(0,0,0);\n") {
		t.Errorf("palette.css starts with %q", string(stylesheet)[:30])
	}
	if _, err := os.Stat(filepath.Join(dir, "themed", "report.yaml")); err != nil {
		t.Errorf("Expected report.yaml in output: %v", err)
	}
}

func TestRecolorRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad_color", []string{"svg", "out", "not-a-color"}},
		{"bad_tolerance", []string{"svg", "out", "#00acc1", "lots"}},
		{"nan_tolerance", []string{"svg", "out", "#00acc1", "NaN"}},
		{"infinite_tolerance", []string{"svg", "out", "#00acc1", "+Inf"}},
		{"same_folders", []string{"svg", "svg"}},
		{"too_many", []string{"svg", "out", "#00acc1", "0.2", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Fatalf("Execute(%v) returned nil error", tt.args)
			}
		})
	}
}

func TestRecolorEmptyInputWritesPalette(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out")
	out, err := execute(t, dir, output)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Recolored 0 documents") {
		t.Errorf("Expected a summary line, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(output, "color_map.sass")); err != nil {
		t.Errorf("Expected color_map.sass in output: %v", err)
	}
}

func TestPaletteCommand(t *testing.T) {
	out, err := execute(t, "palette", "#00b8cc", "--format", "css")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, ":root {\n  --primary-l-0: rgb(0,0,0);\n") {
		t.Errorf("unexpected palette output start: %q", out[:40])
	}
	if !strings.HasSuffix(out, "  --primary-l-255: rgb(255,255,255);\n}\n") {
		t.Errorf("unexpected palette output end: %q", out[len(out)-40:])
	}

	sass, err := execute(t, "palette")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(sass, "html\n\t--primary-l-0: rgb(0,0,0)\n") {
		t.Errorf("unexpected sass output start: %q", sass[:30])
	}

	if _, err := execute(t, "palette", "--format", "less"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.svg")
	if err := os.WriteFile(path, []byte(`<svg fill="black"><path fill="#FF0000"/><path fill="#ff0000"/></svg>`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := execute(t, "inspect", path, "--closest", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{
		"Document: icon.svg",
		"Color: #FF0000 (hex), Count: 2",
		"Color: black (keyword), Count: 1",
		"red (#FF0000), Distance: 0.0000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	if _, err := execute(t, "inspect", filepath.Join(t.TempDir(), "missing.svg")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := "svgtint version " + version + "\n"; out != want {
		t.Errorf("Expected version output %q, got %q", want, out)
	}

	out, err = execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if want := "svgtint version " + version + "\n"; out != want {
		t.Errorf("Expected --version output %q, got %q", want, out)
	}
}
