package render

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"fstyle/config"
	"fstyle/state"
)

const signupForm = `
name: signup
elements:
  - id: email
    kind: text
    styles: {font_size: 14, font_color: "333"}
    mobile_styles: {font_size: 12}
  - id: submit
    kind: button
    styles: {font_size: 16}
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return string(data)
}

func TestProcess_SingleFileToDirectory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "in", "signup.yaml"), signupForm)
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, src, out, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	got := readFile(t, filepath.Join(out, "signup.css"))
	for _, want := range []string{".email-field {", ".submit-field {", "@media (max-width: 478px) {", "font-size: 12px;"} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}

func TestProcess_BaseOnly(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "signup.yaml"), signupForm)
	dst := filepath.Join(dir, "result.css")
	env.BaseOnly = true

	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got := readFile(t, dst); strings.Contains(got, "@media") {
		t.Errorf("base only output has media block:\n%s", got)
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, filepath.Join(in, "a.yaml"), signupForm)
	writeFile(t, filepath.Join(in, "nested", "b.json"), `{"name": "terms", "elements": [{"id": "agree", "kind": "checkbox"}]}`)
	writeFile(t, filepath.Join(in, "notes.txt"), "not a form")
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, in, out, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, name := range []string{"signup.css", "terms.css"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 2 {
		t.Errorf("expected 2 outputs, got %d", len(entries))
	}
}

func TestProcess_DirectoryToFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, filepath.Join(in, "a.yaml"), signupForm)
	writeFile(t, filepath.Join(in, "b.yaml"), signupForm)

	if err := process(ctx, in, filepath.Join(dir, "all.css"), env, env.Log); err == nil {
		t.Error("expected error for several forms and file destination")
	}
}

func TestProcess_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "signup.yaml"), signupForm)
	dst := writeFile(t, filepath.Join(dir, "signup.css"), "old")

	if err := process(ctx, src, dst, env, env.Log); err == nil {
		t.Fatal("expected error for existing output")
	}
	if got := readFile(t, dst); got != "old" {
		t.Errorf("existing file was modified: %q", got)
	}

	env.Overwrite = true
	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got := readFile(t, dst); !strings.Contains(got, ".email-field") {
		t.Errorf("file was not overwritten: %q", got)
	}
}

func TestProcess_BadFormContinues(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeFile(t, filepath.Join(in, "1.yaml"), "elements: 12")
	writeFile(t, filepath.Join(in, "2.yaml"), signupForm)
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	err := process(ctx, in, out, env, env.Log)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 forms failed") {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "signup.css")); err != nil {
		t.Errorf("good form must still be rendered: %v", err)
	}
}

func TestProcess_ExtraStylesheet(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "signup.yaml"), signupForm)
	extra := writeFile(t, filepath.Join(dir, "extra.css"), `.hint { font-style: italic; } div > p { color: red; }`)
	env.Cfg.Document.StylesheetPath = extra
	if err := env.LoadExtraStyle(); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "signup.css")

	if err := process(ctx, src, dst, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	got := readFile(t, dst)
	if !strings.HasSuffix(got, ".hint {\n  font-style: italic;\n}\n") {
		t.Errorf("extra rules must follow generated ones:\n%s", got)
	}
	if strings.Contains(got, "div > p") {
		t.Error("unsupported selector must be dropped")
	}
}

func TestProcess_Cancelled(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "signup.yaml"), signupForm)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	if err := process(ctx, src, filepath.Join(dir, "x.css"), env, env.Log); err == nil {
		t.Error("expected cancellation error")
	}
}

func TestCollect_Missing(t *testing.T) {
	if _, err := collect(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestProcess_Bundle(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	bundle := filepath.Join(dir, "forms.zip")

	zf, err := os.Create(bundle)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(zf)
	for name, content := range map[string]string{
		"a/signup.yaml": signupForm,
		"b/terms.json":  `{"elements": [{"id": "agree", "kind": "checkbox"}]}`,
		"readme.txt":    "skipped",
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	zf.Close()

	if err := process(ctx, bundle, filepath.Join(dir, "single.css"), env, env.Log); err == nil {
		t.Error("expected error for bundle and file destination")
	}

	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}
	if err := process(ctx, bundle, out, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	// form without name is named after its document
	for _, name := range []string{"signup.css", "terms.css"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestProcess_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "signup.yaml"), signupForm)
	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0755); err != nil {
		t.Fatal(err)
	}

	conf := config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	rpt, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt

	if err := process(ctx, src, out, env, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"forms/signup.yaml", "out/signup.css", "trees/1-signup.txt"} {
		if !names[want] {
			t.Errorf("report misses %s, has %v", want, names)
		}
	}
}
