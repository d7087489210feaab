package templates_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-calcform/pkg/form"
	"github.com/goliatone/go-calcform/pkg/model"
	"github.com/goliatone/go-calcform/pkg/templates"
	"github.com/goliatone/go-calcform/pkg/validation"
	"github.com/goliatone/go-calcform/pkg/widgets"
)

func TestDefaultLibrary_AllTemplatesBuild(t *testing.T) {
	lib := templates.Default()
	want := []string{"bmi", "length", "loan", "password", "percentage", "temperature", "text", "tip"}
	if diff := cmp.Diff(want, lib.Names()); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}

	for _, f := range lib.Forms() {
		if err := model.Check(f.Fields); err != nil {
			t.Errorf("template %q: %v", f.ID, err)
		}
		if _, err := form.BuildForm(f, widgets.NewHeadlessFactory()); err != nil {
			t.Errorf("template %q: build: %v", f.ID, err)
		}
	}
}

func TestPresetsReturnFreshSlices(t *testing.T) {
	a := templates.Tip()
	a[0].Label = "changed"
	b := templates.Tip()
	if b[0].Label == "changed" {
		t.Fatalf("preset slices must not be shared")
	}

	lib := templates.Default()
	first := lib.MustLookup("bmi")
	first.Fields[0].Name = "mutated"
	if lib.MustLookup("bmi").Fields[0].Name != "unit" {
		t.Fatalf("lookup should return a fresh form")
	}
}

func TestPasswordGenerator_DefaultsCollect(t *testing.T) {
	h, err := form.Build(templates.PasswordGenerator(), widgets.NewHeadlessFactory())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := model.CollectedData{
		"length":    16,
		"uppercase": true,
		"lowercase": true,
		"digits":    true,
		"symbols":   false,
		"exclude":   "",
	}
	if diff := cmp.Diff(want, h.Collect()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	result, err := h.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid {
		t.Fatalf("defaults should validate, got %v", result.Errors)
	}
}

func TestTip_RejectsFractionalPeople(t *testing.T) {
	result, err := validation.Validate(model.CollectedData{"amount": "20", "percent": "10", "people": "2.5"}, templates.Tip())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := validation.Errors{"people": {"Number of people must be a whole number"}}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrary_RegisterErrors(t *testing.T) {
	lib := templates.NewLibrary()
	builder := func() model.Form { return model.Form{ID: "x"} }
	if err := lib.Register("x", builder); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := lib.Register("x", builder); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := lib.Register(" ", builder); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := lib.Lookup("missing"); err == nil {
		t.Fatalf("expected lookup error")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/discount.yaml": {Data: []byte(`
forms:
  discount:
    title: Discount calculator
    category: financial
    submitLabel: Apply
    fields:
      - name: price
        kind: number
        label: Price
        required: true
        rules:
          - kind: min
            threshold: 0
          - kind: custom
            predicate: nonZero
            message: Price cannot be zero
      - name: code
        kind: text
        rules:
          - kind: pattern
            pattern: "^[A-Z]{3}$"
            message: 3 uppercase letters
          - kind: maxLength
            length: 3
      - name: vip
        kind: checkbox
        default: true
`)},
		"forms/notes.json": {Data: []byte(`{"forms":{"notes":{"title":"Notes","fields":[{"name":"body","kind":"textarea","required":true}]}}}`)},
		"README.md":        {Data: []byte("ignored")},
	}

	lib := templates.NewLibrary()
	if err := templates.LoadFS(lib, fsys); err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"discount", "notes"}, lib.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	discount := lib.MustLookup("discount")
	if discount.SubmitLabel != "Apply" || discount.Category != "financial" {
		t.Fatalf("unexpected form metadata: %+v", discount)
	}

	result, err := validation.Validate(model.CollectedData{"price": "0", "code": "ab", "vip": false}, discount.Fields)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := validation.Errors{
		"price": {"Price cannot be zero"},
		"code":  {"3 uppercase letters"},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	h, err := form.BuildForm(discount, widgets.NewHeadlessFactory())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := h.Collect()["vip"]; got != true {
		t.Fatalf("expected vip default true, got %#v", got)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown predicate": "forms:\n  x:\n    fields:\n      - name: a\n        rules:\n          - kind: custom\n            predicate: nope\n",
		"missing threshold": "forms:\n  x:\n    fields:\n      - name: a\n        rules:\n          - kind: min\n",
		"unknown kind":      "forms:\n  x:\n    fields:\n      - name: a\n        rules:\n          - kind: between\n",
		"duplicate field":   "forms:\n  x:\n    fields:\n      - name: a\n      - name: a\n",
		"select options":    "forms:\n  x:\n    fields:\n      - name: a\n        kind: select\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"x.yaml": {Data: []byte(content)}}
			err := templates.LoadFS(templates.NewLibrary(), fsys)
			if err == nil {
				t.Fatalf("expected error")
			}
			if name == "unknown predicate" && !errors.Is(err, templates.ErrUnknownPredicate) {
				t.Fatalf("expected ErrUnknownPredicate, got %v", err)
			}
			if !strings.Contains(err.Error(), "x.yaml") {
				t.Fatalf("expected file name in error, got %v", err)
			}
		})
	}
}

func TestLoadFS_JSONTypeErrorKeepsDetail(t *testing.T) {
	fsys := fstest.MapFS{
		"notes.json": {Data: []byte(`{"forms":{"notes":{"fields":[{"name":"body","required":"yes"}]}}}`)},
	}
	err := templates.LoadFS(templates.NewLibrary(), fsys)

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected a JSON type error, got %v", err)
	}
	if !strings.Contains(err.Error(), "notes.json") {
		t.Fatalf("expected file name in error, got %v", err)
	}
}

func TestPredicates(t *testing.T) {
	if err := templates.RegisterPredicate("even", func(v any) (bool, error) {
		n, ok := validation.TryParseNumber(v)
		return ok && int(n)%2 == 0, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	fn, err := templates.LookupPredicate("even")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok, _ := fn("4"); !ok {
		t.Fatalf("expected 4 to be even")
	}

	checks := []struct {
		fn    model.Predicate
		value any
		want  bool
	}{
		{templates.IsInteger, "3", true},
		{templates.IsInteger, "3.5", false},
		{templates.IsNumber, "x", false},
		{templates.IsNonZero, "0", false},
		{templates.IsHexColor, "#a0F", true},
		{templates.IsHexColor, "#zzzzzz", false},
	}
	for _, c := range checks {
		if got, _ := c.fn(c.value); got != c.want {
			t.Errorf("predicate(%v) = %v, want %v", c.value, got, c.want)
		}
	}
}

func TestMarshalYAML_RoundTrips(t *testing.T) {
	tip := templates.Default().MustLookup("tip")

	raw, err := templates.MarshalYAML(tip)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), "predicate: integer") {
		t.Fatalf("expected custom rule to be encoded by name:\n%s", raw)
	}

	lib := templates.NewLibrary()
	if err := templates.LoadFS(lib, fstest.MapFS{"tip.yaml": {Data: raw}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := lib.MustLookup("tip")

	opts := cmpopts.IgnoreFields(model.CustomRule{}, "Predicate")
	if diff := cmp.Diff(tip, got, opts); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_TOML(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/age.toml": {Data: []byte(`
[forms.age]
title = "Age calculator"
submitLabel = "Compute"

[[forms.age.fields]]
name = "years"
kind = "number"
label = "Years"
required = true

[[forms.age.fields.rules]]
kind = "min"
threshold = 0.0

[[forms.age.fields.rules]]
kind = "custom"
predicate = "integer"
message = "Whole years only"
`)},
	}

	lib := templates.NewLibrary()
	if err := templates.LoadFS(lib, fsys); err != nil {
		t.Fatalf("load: %v", err)
	}
	age := lib.MustLookup("age")
	if age.Title != "Age calculator" || age.SubmitLabel != "Compute" || len(age.Fields) != 1 {
		t.Fatalf("unexpected form: %+v", age)
	}

	result, err := validation.Validate(model.CollectedData{"years": "2.5"}, age.Fields)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"Whole years only"}, result.Errors.Get("years")); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
