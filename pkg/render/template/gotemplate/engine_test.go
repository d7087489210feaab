package gotemplate_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-calcform/pkg/render/template/gotemplate"
)

func templateFiles() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":      {Data: []byte(`Hello {{ name }}`)},
		"use-global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
		"use-filter.tmpl": {Data: []byte(`{{ name|shout }}`)},
		"rows.tmpl":       {Data: []byte(`rows={{ rows }}`)},
	}
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templateFiles())}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderWritesOutput(t *testing.T) {
	engine := newEngine(t)
	var buf strings.Builder
	got, err := engine.Render("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Ada" || buf.String() != got {
		t.Fatalf("unexpected output %q / %q", got, buf.String())
	}
}

func TestEngine_StructData(t *testing.T) {
	engine := newEngine(t)
	data := struct {
		Name string `json:"name"`
	}{Name: "Grace"}
	got, err := engine.Render("hello.tmpl", data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hello Grace" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_Globals(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobals(map[string]any{"settings": map[string]any{"env": "dev"}}))
	got, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=dev" {
		t.Fatalf("got %q", got)
	}

	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "staging"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	got, err := engine.Render("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "ADA!" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_RenderStringEscapes(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.RenderString(`<b>{{ v }}</b>`, map[string]any{"v": "<x>"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "<b>&lt;x&gt;</b>" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_StringValuesSurviveConversion(t *testing.T) {
	engine := newEngine(t)
	got, err := engine.Render("rows", map[string]any{"rows": "4"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "rows=4" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_DirOverridesFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte(`Hi {{ name }}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	engine := newEngine(t, gotemplate.WithDir(dir))

	got, err := engine.Render("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada" {
		t.Fatalf("got %q", got)
	}
	got, err = engine.Render("use-global", map[string]any{"settings": map[string]any{"env": "fs"}})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "env=fs" {
		t.Fatalf("got %q", got)
	}
}

func TestEngine_LogsRenders(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := newEngine(t, gotemplate.WithLogger(zap.New(core)))

	if _, err := engine.Render("hello", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("render: %v", err)
	}

	entries := logs.FilterMessage("template rendered").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	want := map[string]any{"template": "hello", "bytes": int64(len("Hello Ada"))}
	if diff := cmp.Diff(want, entries[0].ContextMap()); diff != "" {
		t.Fatalf("log fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); !errors.Is(err, gotemplate.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}
