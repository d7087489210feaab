// Package templates is the catalog of reusable descriptor presets used by the
// calculator utilities: tip, loan/financial, unit conversion, BMI, free text,
// password generation, percentage and temperature.
//
// Every preset function returns a fresh slice so callers may append or tweak
// fields without affecting other forms. Library maps preset names to
// model.Form builders and can be extended with forms declared in YAML or JSON
// files via LoadFS.
package templates
