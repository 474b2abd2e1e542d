package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypergraph/internal/config"
	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/render"
)

const pairDoc = `{"hypergraph": {"name": "pair", "vertices": [
  {"id": "a", "name": "A", "type": "rectangle", "position": {"x": 0, "y": 0, "z": 0}, "size": {"width": 2, "height": 2}},
  {"id": "b", "name": "B", "type": "rectangle", "position": {"x": 0, "y": 5, "z": 0}, "size": {"width": 2, "height": 2}}
], "edges": [
  {"ids": ["a", "b"], "type": "Line", "text": "uses"}
]}}`

type testEnv struct {
	dir    string
	config string
	doc    string
}

// newTestEnv writes a config that keeps caches, models and prefs inside a
// temp dir, plus a document to operate on.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Cache.Backend = config.BackendNone
	cfg.Storage.Dir = filepath.Join(dir, "models")
	cfg.Prefs.Dir = filepath.Join(dir, "prefs")
	env := testEnv{dir: dir, config: filepath.Join(dir, "config.toml"), doc: filepath.Join(dir, "pair.json")}
	if err := config.Save(cfg, env.config); err != nil {
		t.Fatalf("config.Save() error = %v", err)
	}
	if err := os.WriteFile(env.doc, []byte(pairDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return env
}

func (env testEnv) run(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", env.config}, args...))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return c, root.ExecuteContext(context.Background())
}

func parseFile(t *testing.T, path string) *hypergraph.Document {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	d, _, err := hypergraph.Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", path, err)
	}
	return d
}

func TestLayoutCommand(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(env.dir, "settled.json")

	if _, err := env.run(t, "layout", env.doc, "-o", out); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	d := parseFile(t, out)
	if _, ok := d.Vertex("a"); !ok {
		t.Error("settled document lost vertex a")
	}
	if len(d.Edges) != 1 {
		t.Errorf("edges = %d, want 1", len(d.Edges))
	}
}

func TestLayoutCommandDefaultOutput(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "layout", env.doc); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "pair.layout.json")); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestRenderCommandFormats(t *testing.T) {
	env := newTestEnv(t)
	base := filepath.Join(env.dir, "out", "pair")

	if _, err := env.run(t, "render", env.doc, "-f", "svg,dot,json", "-o", base); err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, ext := range []string{".svg", ".dot", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
}

func TestRenderCommandRejectsFormat(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "render", env.doc, "-f", "pdf"); err == nil {
		t.Error("render -f pdf succeeded, want error")
	}
}

func TestDragCommand(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(env.dir, "dragged.json")

	if _, err := env.run(t, "drag", env.doc, "--vertex", "a", "--to", "-20,3", "--steps", "4", "-o", out); err != nil {
		t.Fatalf("drag error = %v", err)
	}
	d := parseFile(t, out)
	a, _ := d.Vertex("a")
	if a.Position.X != -20 || a.Position.Y != 3 {
		t.Errorf("a = %+v, want (-20, 3)", a.Position)
	}
}

func TestDragCommandUnknownVertex(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run(t, "drag", env.doc, "--vertex", "zz", "--to", "1,1"); err == nil {
		t.Error("drag of unknown vertex succeeded, want error")
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    geom.Point
		wantErr bool
	}{
		{"1,2", geom.Point{X: 1, Y: 2}, false},
		{" -3.5 , 0.25 ", geom.Point{X: -3.5, Y: 0.25}, false},
		{"1", geom.Point{}, true},
		{"x,2", geom.Point{}, true},
		{"1,y", geom.Point{}, true},
	}
	for _, tt := range tests {
		got, err := parsePoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePoint(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDocsImportAndDelete(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.run(t, "docs", "import", env.doc); err != nil {
		t.Fatalf("docs import error = %v", err)
	}
	stored := filepath.Join(env.dir, "models", "pair.json")
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("imported document missing: %v", err)
	}
	if _, err := env.run(t, "docs", "delete", "pair"); err != nil {
		t.Fatalf("docs delete error = %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("document still stored after delete: %v", err)
	}
}

func TestDocsBadgerBackend(t *testing.T) {
	env := newTestEnv(t)
	cfg, err := config.Load(env.config)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Storage.Backend = config.BackendBadger
	cfg.Storage.Dir = filepath.Join(env.dir, "library.db")
	if err := config.Save(cfg, env.config); err != nil {
		t.Fatal(err)
	}

	if _, err := env.run(t, "docs", "import", env.doc, "--name", "shared"); err != nil {
		t.Fatalf("docs import error = %v", err)
	}
	out := captureStdout(t)
	if _, err := env.run(t, "docs", "list"); err != nil {
		t.Fatalf("docs list error = %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("shared")) {
		t.Errorf("docs list = %q, want shared", out.String())
	}
	if _, err := os.Stat(filepath.Join(env.dir, "models", "shared.json")); !os.IsNotExist(err) {
		t.Errorf("badger backend wrote a file store entry: %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	env := testEnv{dir: dir, config: path}

	if _, err := env.run(t, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("config.Load() of written file error = %v", err)
	}
	if _, err := env.run(t, "config", "init"); err == nil {
		t.Error("second config init succeeded without --force")
	}
	if _, err := env.run(t, "config", "init", "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestPrefsSet(t *testing.T) {
	env := newTestEnv(t)

	c, err := env.run(t, "prefs", "set", "--user", "ada", "--document", "pair")
	if err != nil {
		t.Fatalf("prefs set error = %v", err)
	}
	p, err := c.loadPrefs(context.Background())
	if err != nil {
		t.Fatalf("loadPrefs() error = %v", err)
	}
	if p.UserName != "ada" || p.HypergraphName != "pair" {
		t.Errorf("prefs = %+v", p)
	}
}

// =============================================================================
// Editor model
// =============================================================================

func newTestEditor(t *testing.T) (editorModel, *engine.Engine) {
	t.Helper()
	scene := render.NewScene()
	eng := engine.New(scene, engine.Options{})
	if _, err := eng.Load([]byte(pairDoc)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	m, err := newEditorModel(eng, scene, filepath.Join(t.TempDir(), "pair.json"))
	if err != nil {
		t.Fatalf("newEditorModel() error = %v", err)
	}
	return m, eng
}

func press(m editorModel, keys ...tea.KeyMsg) editorModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(editorModel)
	}
	return m
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySave  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}
	keyPlus  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}
)

func TestEditorSelectAndDrag(t *testing.T) {
	m, eng := newTestEditor(t)
	if len(m.ids) != 2 {
		t.Fatalf("ids = %v, want a and b", m.ids)
	}

	m = press(m, keyTab, keyEnter)
	state, dragged := eng.State()
	if state != engine.Dragging || dragged != "b" {
		t.Fatalf("State() = %v %q, want dragging b", state, dragged)
	}

	before, _ := m.scene.Vertex("b")
	m = press(m, keyUp, keyUp)
	v, _ := m.scene.Vertex("b")
	if want := before.Position.Y + 2*defaultNudge; v.Position.Y != want {
		t.Errorf("b.y = %v, want %v", v.Position.Y, want)
	}
	if !m.dirty {
		t.Error("model not dirty after move")
	}

	// Selection is frozen while dragging.
	m = press(m, keyTab)
	if m.ids[m.cursor] != "b" {
		t.Errorf("cursor moved during drag to %q", m.ids[m.cursor])
	}

	m = press(m, keyEnter)
	if state, _ := eng.State(); state != engine.Idle {
		t.Errorf("State() = %v after release, want idle", state)
	}
}

func TestEditorMoveWithoutDrag(t *testing.T) {
	m, _ := newTestEditor(t)
	before, _ := m.scene.Vertex("a")
	m = press(m, keyLeft)
	after, _ := m.scene.Vertex("a")
	if before != after {
		t.Errorf("vertex moved without drag: %+v -> %+v", before.Position, after.Position)
	}
	if m.message == "" {
		t.Error("no hint shown for move without drag")
	}
}

func TestEditorNudgeBounds(t *testing.T) {
	m, _ := newTestEditor(t)
	for range 10 {
		m = press(m, keyPlus)
	}
	if m.nudge != maxNudge {
		t.Errorf("nudge = %v, want %v", m.nudge, maxNudge)
	}
}

func TestEditorSave(t *testing.T) {
	m, _ := newTestEditor(t)
	m = press(m, keyEnter, keyLeft, keyEnter, keySave)
	if !m.saved || m.dirty {
		t.Fatalf("saved = %v dirty = %v, message %q", m.saved, m.dirty, m.message)
	}
	d := parseFile(t, m.path)
	a, _ := d.Vertex("a")
	if a.Position.X != -defaultNudge {
		t.Errorf("saved a.x = %v, want %v", a.Position.X, -defaultNudge)
	}
}

func TestEditorView(t *testing.T) {
	m, _ := newTestEditor(t)
	view := m.View()
	for _, want := range []string{"pair.json", "Vertex", "a", "b", "idle"} {
		if !bytes.Contains([]byte(view), []byte(want)) {
			t.Errorf("View() missing %q", want)
		}
	}
}
