// Package validation evaluates field descriptors against collected form data.
//
// For every field, in descriptor order, the validator first runs the required
// check (which short-circuits the field's remaining rules when it fails), then
// skips optional fields whose value is empty, and finally evaluates every rule
// in declaration order, accumulating one message per failing rule. The result
// is a pure function of the data and the descriptors; widgets are never
// touched here.
//
// Numeric rules coerce through TryParseNumber. A value that is present but not
// numeric yields a dedicated "must be a number" message instead of silently
// passing or being reported as out of range.
package validation
