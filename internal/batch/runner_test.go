package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/svgtint/internal/palette"
	"github.com/codr1/svgtint/internal/recolor"
	"github.com/codr1/svgtint/internal/storage"
	"github.com/codr1/svgtint/internal/theme"
)

type testEnv struct {
	input  string
	output string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{
		input:  filepath.Join(dir, "svg"),
		output: filepath.Join(dir, "out"),
	}
}

func (e testEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(e.input, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func (e testEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.output, rel))
	if err != nil {
		t.Fatalf("read output %s: %v", rel, err)
	}
	return string(data)
}

func newTestTheme(t *testing.T) *theme.Theme {
	t.Helper()
	opts := theme.DefaultOptions()
	opts.PrimaryColor = "#00b8cc"
	th, err := theme.New(opts)
	if err != nil {
		t.Fatalf("theme.New() error = %v", err)
	}
	return th
}

func (e testEnv) options() Options {
	return Options{
		RunID:       "test-run",
		Input:       e.input,
		Output:      e.output,
		Workers:     2,
		PalettePath: filepath.Join(e.output, "color_map.sass"),
		ReportPath:  filepath.Join(e.output, "report.yaml"),
	}
}

func TestRun(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "icon.svg", `<svg><path fill="black"/><path fill="#FFF"/></svg>`)
	env.write(t, "nested/plain.svg", `<svg><g/></svg>`)
	env.write(t, "nested/deeper/mono.svg", `<svg fill="white"/>`)
	env.write(t, "notes.txt", `black white`)

	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), recolor.NopSink{}, env.options())
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := env.read(t, "icon.svg"); got != `<svg><path fill="var(--primary-l-82)"/><path fill="var(--primary-l-122)"/></svg>` {
		t.Fatalf("icon.svg = %q", got)
	}
	if got := env.read(t, "nested/plain.svg"); got != `<svg><g/></svg>` {
		t.Fatalf("plain.svg = %q, want unchanged", got)
	}
	if got := env.read(t, "nested/deeper/mono.svg"); got != `<svg fill="var(--primary-l-102)"/>` {
		t.Fatalf("mono.svg = %q", got)
	}
	if _, err := os.Stat(filepath.Join(env.output, "notes.txt")); !os.IsNotExist(err) {
		t.Fatalf("notes.txt was written to output: %v", err)
	}

	stylesheet := env.read(t, "color_map.sass")
	if !strings.HasPrefix(stylesheet, "html\n\t--primary-l-0: rgb(0,0,0)\n") {
		t.Fatalf("stylesheet starts with %q", stylesheet[:40])
	}
	if lines := strings.Count(stylesheet, "\n"); lines != palette.DefaultLevels+2 {
		t.Fatalf("stylesheet has %d lines, want %d", lines, palette.DefaultLevels+2)
	}

	if report.RunID != "test-run" || report.Totals.Documents != 3 {
		t.Fatalf("report = %+v", report)
	}
	if report.Totals.Tokens != 3 || report.Totals.Substituted != 3 || report.Totals.Unchanged != 0 {
		t.Fatalf("report totals = %+v", report.Totals)
	}
	for i := 1; i < len(report.Documents); i++ {
		if report.Documents[i-1].Path > report.Documents[i].Path {
			t.Fatalf("report documents not sorted: %s before %s", report.Documents[i-1].Path, report.Documents[i].Path)
		}
	}
}

func TestRunWritesReadableReport(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "icon.svg", `black white`)
	env.write(t, "empty.svg", `<svg/>`)

	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), nil, env.options())
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := os.Open(filepath.Join(env.output, "report.yaml"))
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer f.Close()

	report, err := ReadReport(f)
	if err != nil {
		t.Fatalf("ReadReport() error = %v", err)
	}
	if report.PrimaryColor != "#00b8cc" || report.Tolerance != 0.2 {
		t.Fatalf("report header = %+v", report)
	}
	if len(report.Documents) != 2 {
		t.Fatalf("report has %d documents, want 2", len(report.Documents))
	}
	empty, icon := report.Documents[0], report.Documents[1]
	if empty.Observed != nil || empty.Tokens != 0 {
		t.Fatalf("empty document report = %+v", empty)
	}
	if icon.Observed == nil || icon.Observed.Low != 0 || icon.Contained {
		t.Fatalf("icon document report = %+v", icon)
	}
}

func TestRunNoDocumentsStillWritesPalette(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "notes.txt", `black white`)

	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), nil, env.options())
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Totals.Documents != 0 || len(report.Documents) != 0 {
		t.Fatalf("report = %+v, want no documents", report)
	}
	stylesheet := env.read(t, "color_map.sass")
	if lines := strings.Count(stylesheet, "\n"); lines != palette.DefaultLevels+2 {
		t.Fatalf("stylesheet has %d lines, want %d", lines, palette.DefaultLevels+2)
	}
	if _, err := os.Stat(filepath.Join(env.output, "report.yaml")); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestRunMissingInput(t *testing.T) {
	env := newTestEnv(t)
	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), nil, env.options())
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("Run() with a missing input folder returned nil error")
	}
}

// failingStore fails writes for one path.
type failingStore struct {
	*storage.FS
	failOn string
}

func (s failingStore) Write(path, content string) error {
	if filepath.Base(path) == s.failOn {
		return errors.New("disk full")
	}
	return s.FS.Write(path, content)
}

func TestRunStopsOnWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "a.svg", `black`)
	env.write(t, "b.svg", `white`)

	store := failingStore{FS: storage.NewFS([]string{".svg"}), failOn: "b.svg"}
	runner := NewRunner(store, newTestTheme(t), nil, env.options())
	if _, err := runner.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Run() error = %v, want disk full", err)
	}
}

func TestRunCancelled(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "a.svg", `black`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), nil, env.options())
	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

// countingSink counts boundary events from concurrent workers.
type countingSink struct {
	recolor.NopSink
	mu         sync.Mutex
	boundaries int
}

func (s *countingSink) BoundaryComputed(recolor.BoundaryEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundaries++
}

func TestRunManyDocumentsConcurrently(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 40; i++ {
		env.write(t, filepath.Join("set", string(rune('a'+i%26))+strings.Repeat("x", i/26)+".svg"), `black gray white`)
	}

	sink := &countingSink{}
	opts := env.options()
	opts.Workers = 8
	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), sink, opts)

	done := make(chan struct{})
	var report *Report
	var err error
	go func() {
		defer close(done)
		report, err = runner.Run(context.Background())
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("Run() did not finish")
	}

	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Totals.Documents != 40 || sink.boundaries != 40 {
		t.Fatalf("documents = %d, boundary events = %d, want 40", report.Totals.Documents, sink.boundaries)
	}
	first := env.read(t, filepath.Join("set", "a.svg"))
	for _, doc := range report.Documents {
		data, readErr := os.ReadFile(doc.Output)
		if readErr != nil {
			t.Fatalf("read %s: %v", doc.Output, readErr)
		}
		if string(data) != first {
			t.Fatalf("%s = %q, want %q", doc.Output, data, first)
		}
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), nil, Options{PalettePath: "out/palette.css"})
	if runner.RunID() == "" {
		t.Fatal("RunID() is empty")
	}
	if runner.opts.Workers < 1 {
		t.Fatalf("Workers = %d, want >= 1", runner.opts.Workers)
	}
	if runner.opts.PaletteFormat != palette.FormatCSS {
		t.Fatalf("PaletteFormat = %s, want css", runner.opts.PaletteFormat)
	}
}

func TestRunSkipsNestedOutput(t *testing.T) {
	env := newTestEnv(t)
	env.output = filepath.Join(env.input, "themed")
	env.write(t, "icon.svg", `black white`)
	env.write(t, "themed/stale.svg", `black`)

	runner := NewRunner(storage.NewFS([]string{".svg"}), newTestTheme(t), nil, env.options())
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Totals.Documents != 1 {
		t.Fatalf("documents = %d, want 1", report.Totals.Documents)
	}
	if _, err := os.Stat(filepath.Join(env.output, "themed", "stale.svg")); !os.IsNotExist(err) {
		t.Fatalf("output folder was recolored into itself: %v", err)
	}
}
