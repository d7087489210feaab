package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calcform/pkg/renderers/tui"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	var out, errOut bytes.Buffer
	cmd := rootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const discountTemplate = `forms:
  discount:
    title: Discount calculator
    category: financial
    fields:
      - name: price
        kind: number
        label: Price
        required: true
        rules:
          - kind: min
            threshold: 0
`

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "discount.yaml", discountTemplate)

	out, _, err := execute(t, "--templates", dir, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, name := range []string{"discount", "tip", "password"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %q in list output:\n%s", name, out)
		}
	}

	out, _, err = execute(t, "list", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var entries []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 8 || entries[0].ID != "bmi" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestDescribe(t *testing.T) {
	out, _, err := execute(t, "describe", "tip")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	for _, fragment := range []string{"tip:", "title: Tip calculator", "name: amount", "predicate: integer"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("expected %q in describe output:\n%s", fragment, out)
		}
	}

	if _, _, err := execute(t, "describe", "nope"); err == nil {
		t.Fatalf("expected unknown template error")
	}
}

func TestSchema(t *testing.T) {
	out, _, err := execute(t, "schema", "bmi")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var schema struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
	}
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if schema.Type != "object" || schema.Properties["height"] == nil {
		t.Fatalf("unexpected schema: %s", out)
	}

	out, _, err = execute(t, "schema", "--title", "Tools")
	if err != nil {
		t.Fatalf("schema document: %v", err)
	}
	if !strings.Contains(out, `"/forms/tip"`) || !strings.Contains(out, `"title": "Tools"`) {
		t.Fatalf("unexpected document:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", "tip", "--set", "amount=10", "--set", "people=2")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	var accepted map[string]any
	if err := json.Unmarshal([]byte(out), &accepted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"isValid": true,
		"errors":  map[string]any{},
		"data":    map[string]any{"amount": "10", "percent": float64(15), "people": "2"},
	}
	if diff := cmp.Diff(want, accepted); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	out, _, err = execute(t, "validate", "tip", "--set", "amount=-1", "--set", "people=1.5")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var rejected map[string]any
	if err := json.Unmarshal([]byte(out), &rejected); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want = map[string]any{
		"isValid": false,
		"errors": map[string]any{
			"amount": []any{"Minimum value is 0"},
			"people": []any{"Number of people must be a whole number"},
		},
	}
	if diff := cmp.Diff(want, rejected); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := execute(t, "validate", "tip", "--set", "nope=1"); err == nil || !strings.Contains(err.Error(), `unknown field "nope"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if _, _, err := execute(t, "validate", "tip", "--set", "amount"); err == nil {
		t.Fatalf("expected malformed --set error")
	}
}

func TestValidate_MessageCatalog(t *testing.T) {
	dir := t.TempDir()
	catalog := writeFile(t, dir, "messages.yaml", "es:\n  validation.required: \"%s es obligatorio\"\n")

	out, _, err := execute(t, "--messages", catalog, "--locale", "es", "validate", "tip")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if !strings.Contains(out, "Bill amount es obligatorio") {
		t.Fatalf("expected translated message:\n%s", out)
	}
}

func TestValidate_EnvironmentDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALCFORM_MESSAGES", writeFile(t, dir, "messages.yaml", "es:\n  validation.min: \"Mínimo %v\"\n"))
	t.Setenv("CALCFORM_LOCALE", "es-ES")

	out, _, err := execute(t, "validate", "tip", "--set", "amount=-3")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if !strings.Contains(out, "Mínimo 0") {
		t.Fatalf("expected message from the environment catalog:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	out, _, err := execute(t, "render", "tip", "--document", "--action", "/forms/tip", "--theme", "acme", "--css-var", "accent=red")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{"<!doctype html>", `action="/forms/tip"`, `data-theme="acme"`, `--accent: red`} {
		if !strings.Contains(out, fragment) {
			t.Errorf("expected %q in output:\n%s", fragment, out)
		}
	}

	out, _, err = execute(t, "render", "tip", "--format", "json", "--submit")
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !strings.Contains(out, `"error": "Bill amount is required"`) {
		t.Fatalf("expected snapshot with error:\n%s", out)
	}

	if _, _, err := execute(t, "render", "tip", "--format", "pdf"); err == nil {
		t.Fatalf("expected format error")
	}
}

type scriptedDriver struct {
	answers map[string]string
	abort   bool
	infos   []string
}

func (d *scriptedDriver) answer(message, fallback string) (string, error) {
	if d.abort {
		return "", tui.ErrAborted
	}
	if v, ok := d.answers[message]; ok {
		return v, nil
	}
	return fallback, nil
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answer(cfg.Message, cfg.Default)
}

func (d *scriptedDriver) Password(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answer(cfg.Message, "")
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	if d.abort {
		return false, tui.ErrAborted
	}
	return cfg.Default, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	if d.abort {
		return 0, tui.ErrAborted
	}
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.answer(cfg.Message, cfg.Default)
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func useDriver(t *testing.T, driver tui.PromptDriver) {
	t.Helper()
	previous := newPromptDriver
	newPromptDriver = func(io.Writer) tui.PromptDriver { return driver }
	t.Cleanup(func() { newPromptDriver = previous })
}

func TestRun(t *testing.T) {
	useDriver(t, &scriptedDriver{answers: map[string]string{"Bill amount *": "20"}})

	out, _, err := execute(t, "run", "tip", "--output", "pretty")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff("amount=20\npercent=15\npeople=1\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_MaxAttemptsAndAbort(t *testing.T) {
	driver := &scriptedDriver{}
	useDriver(t, driver)

	_, _, err := execute(t, "run", "tip", "--max-attempts", "2")
	if !errors.Is(err, tui.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if len(driver.infos) != 1 || !strings.Contains(driver.infos[0], "Bill amount: Bill amount is required") {
		t.Fatalf("unexpected info messages %q", driver.infos)
	}

	useDriver(t, &scriptedDriver{abort: true})
	_, stderr, err := execute(t, "run", "tip")
	if !errors.Is(err, errInvalid) || !strings.Contains(stderr, "aborted") {
		t.Fatalf("expected abort, got %v (%q)", err, stderr)
	}

	if _, _, err := execute(t, "run", "tip", "--output", "xml"); err == nil {
		t.Fatalf("expected output format error")
	}
}

func TestLint(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "discount.yaml", discountTemplate)

	out, _, err := execute(t, "lint", dir)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if !strings.Contains(out, "1 file(s) ok") {
		t.Fatalf("unexpected output %q", out)
	}

	bad := t.TempDir()
	writeFile(t, bad, "broken.yaml", "forms:\n  x:\n    fields:\n      - name: a\n        rules:\n          - kind: custom\n            predicate: nope\n")
	writeFile(t, bad, "defects.yaml", `forms:
  tip:
    fields:
      - name: unit
        kind: select
        default: feet
        options:
          - value: m
      - name: size
        kind: number
        default: big
        constraints:
          min: 10
          max: 1
`)

	_, stderr, err := execute(t, "lint", bad)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	for _, fragment := range []string{
		"broken.yaml: file -> templates: form \"x\"",
		"defects.yaml: forms > tip -> shadows a built-in template",
		"defects.yaml: forms > tip > fields > size -> constraint min 10 is greater than max 1",
		"defects.yaml: forms > tip > fields > size -> default big is not a number",
		"defects.yaml: forms > tip > fields > unit -> default \"feet\" is not one of the options",
	} {
		if !strings.Contains(stderr, fragment) {
			t.Errorf("expected %q in lint output:\n%s", fragment, stderr)
		}
	}
}

func TestSetup_InvalidFlags(t *testing.T) {
	if _, _, err := execute(t, "--log-format", "xml", "list"); err == nil {
		t.Fatalf("expected log format error")
	}
	if _, _, err := execute(t, "--templates", filepath.Join(t.TempDir(), "missing"), "list"); err == nil {
		t.Fatalf("expected templates directory error")
	}
}
