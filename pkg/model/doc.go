// Package model defines the descriptor contract consumed by the form engine.
// A Field describes one input (name, kind, label, default, required flag,
// kind-specific constraints and an ordered rule list). Fields and their Rules
// are built once, by a template or by the caller, and are read-only for the
// life of every form built from them, so one descriptor slice can back many
// forms at the same time.
//
// Rule is a closed set of variants (MinRule, MaxRule, PatternRule,
// CustomRule, MinLengthRule, MaxLengthRule). Callers switch on the concrete
// type; the unexported marker method keeps other packages from adding cases
// the validator does not know how to evaluate.
package model
