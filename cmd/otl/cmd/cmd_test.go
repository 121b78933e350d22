package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/render"
)

// run executes the CLI with a private config file and returns its output.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	verbose, themeName, ppi = false, "", 0
	boardPreset, boardWidth, boardHeight, overwrite, placeName = "", "2in", "1.5in", false, ""
	outputPath, iconSize, margin, selectList, dragList = "", 32, 10, "", ""
	showBoards, keepTheme = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.json")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("otl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func lineWith(out, prefix string) string {
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, prefix) {
			return l
		}
	}
	return ""
}

func TestCatalog(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "catalog", "--boards")
	for _, want := range []string{"Connectivity", "Trace Cut", "Cut", "Boards", "Vero Board", "Perf Board", "TriPad Board"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output lacks %q:\n%s", want, out)
		}
	}
}

func TestPropsOfType(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "props", "Trace Cut")
	size := lineWith(out, "size")
	if !strings.Contains(size, "0.07in") || !strings.Contains(size, "default") {
		t.Errorf("size row = %q", size)
	}
	cut := lineWith(out, "cutBetweenHoles")
	if !strings.Contains(cut, "true") || strings.Contains(cut, "default") {
		t.Errorf("cutBetweenHoles row = %q", cut)
	}

	if _, err := run(t, dir, "props", "Flux Capacitor"); err == nil {
		t.Error("props of unknown type succeeded")
	}
}

func TestLayoutWorkflow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuts.otl")

	out := mustRun(t, dir, "new", path)
	if !strings.Contains(out, "Vero Board 400x300 px") {
		t.Errorf("new output = %q", out)
	}
	if _, err := run(t, dir, "new", path); err == nil {
		t.Error("new over an existing file succeeded without --force")
	}

	out = mustRun(t, dir, "place", path, "Trace Cut", "115", "31")
	if !strings.Contains(out, "Placed Cut1 at (115, 31) on Vero Board") {
		t.Errorf("place output = %q", out)
	}
	mustRun(t, dir, "place", path, "Trace Cut", "0.55in", "1in", "--name", "Gap")
	if _, err := run(t, dir, "place", path, "Trace Cut", "1", "1", "--name", "Gap"); err == nil {
		t.Error("duplicate name accepted")
	}
	if _, err := run(t, dir, "place", path, "Nope", "1", "1"); err == nil {
		t.Error("unknown type accepted")
	}

	out = mustRun(t, dir, "set", path, "Cut1", "cutBetweenHoles", "false")
	if strings.TrimSpace(out) != "Cut1.cutBetweenHoles = false" {
		t.Errorf("set output = %q", out)
	}
	if _, err := run(t, dir, "set", path, "Cut1", "wobble", "1"); err == nil {
		t.Error("unknown property accepted")
	}

	out = mustRun(t, dir, "props", path, "Cut1")
	if row := lineWith(out, "cutBetweenHoles"); !strings.Contains(row, "false") {
		t.Errorf("stored cutBetweenHoles row = %q", row)
	}
	if row := lineWith(out, "fillColor"); !strings.Contains(row, "default") {
		t.Errorf("fillColor row = %q", row)
	}

	out = mustRun(t, dir, "inspect", path)
	for _, want := range []string{"Structure: ", "Boards (1)", "Components (2)", "Cut1", "Gap"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output lacks %q:\n%s", want, out)
		}
	}

	pngPath := filepath.Join(dir, "cuts.png")
	mustRun(t, dir, "render", path, "-o", pngPath, "--select", "Gap")
	if w, h := pngSize(t, pngPath); w != 420 || h != 320 {
		t.Errorf("render size = %dx%d, want 420x320", w, h)
	}
	if _, err := run(t, dir, "render", path, "-o", pngPath, "--select", "Nobody"); err == nil {
		t.Error("render selected a missing component")
	}

	out = mustRun(t, dir, "remove", path, "Cut1")
	if strings.TrimSpace(out) != "Removed Cut1" {
		t.Errorf("remove output = %q", out)
	}
	out = mustRun(t, dir, "inspect", path)
	if !strings.Contains(out, "Components (1)") || strings.Contains(out, "Cut1") {
		t.Errorf("inspect after remove:\n%s", out)
	}
}

func TestNewWithPresetAndSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perf.otl")
	out := mustRun(t, dir, "new", path, "--board", "Perf Board", "--width", "1in", "--height", "50px")
	if !strings.Contains(out, "Perf Board 200x50 px") {
		t.Errorf("new output = %q", out)
	}
	if _, err := run(t, dir, "new", path, "--force", "--board", "Cardboard"); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestSaveKeepsFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuts.otl")
	mustRun(t, dir, "new", path)
	if fi, err := os.Stat(path); err != nil || fi.Mode().Perm() != 0o644 {
		t.Fatalf("new layout: %v %v, want mode 0644", fi, err)
	}
	if err := os.Chmod(path, 0o664); err != nil {
		t.Fatal(err)
	}
	mustRun(t, dir, "place", path, "Trace Cut", "10", "10")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o664 {
		t.Errorf("mode after place = %v, want 0664", fi.Mode().Perm())
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, ".otl-*")); len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	mustRun(t, dir, "icon", "Trace Cut", "-o", path)
	if w, h := pngSize(t, path); w != 32 || h != 32 {
		t.Errorf("icon size = %dx%d", w, h)
	}
	mustRun(t, dir, "icon", "Trace Cut", "-o", path, "--size", "48")
	if w, h := pngSize(t, path); w != 48 || h != 48 {
		t.Errorf("icon size = %dx%d", w, h)
	}
}

func TestRenderEmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.otl")
	if err := os.WriteFile(path, []byte("(layout (version 1))\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, dir, "render", path, "-o", filepath.Join(dir, "x.png")); err == nil {
		t.Error("rendering an empty layout succeeded")
	}
}

func TestInspectRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.otl")
	if err := os.WriteFile(path, []byte("(layout (version 9))\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, dir, "inspect", path); err == nil {
		t.Error("inspect accepted an unsupported version")
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	out := mustRun(t, dir, "config")
	if lineWith(out, "theme:") != "theme: Classic" {
		t.Errorf("default config:\n%s", out)
	}

	mustRun(t, dir, "config", "set", "theme", "nord")
	mustRun(t, dir, "config", "set", "ppi", "300")
	out = mustRun(t, dir, "config")
	if lineWith(out, "theme:") != "theme: Nord" || lineWith(out, "ppi:") != "ppi:   300" {
		t.Errorf("stored config:\n%s", out)
	}

	out = mustRun(t, dir, "config", "themes")
	if lineWith(out, "*") != "* Nord" {
		t.Errorf("themes output:\n%s", out)
	}

	out = mustRun(t, dir, "config", "--theme", "Eagle")
	if lineWith(out, "theme:") != "theme: Eagle" {
		t.Errorf("flag override:\n%s", out)
	}

	for _, args := range [][]string{
		{"config", "set", "theme", "Sepia"},
		{"config", "set", "ppi", "-1"},
		{"config", "set", "colour", "red"},
		{"config", "set", "board", "Cardboard"},
	} {
		if _, err := run(t, dir, args...); err == nil {
			t.Errorf("otl %s succeeded", strings.Join(args, " "))
		}
	}
}

func TestStoreTheme(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.json")
	t.Cleanup(func() { configPath = "" })

	storeTheme(render.ThemeEagle)
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"theme": "Eagle"`) {
		t.Errorf("config file:\n%s", data)
	}
}
