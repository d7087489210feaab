// Package render turns a built form into a serialised representation. HTML
// lives in renderers/vanilla; this package holds the shared Renderer contract,
// the name registry, the JSON snapshot renderer and a YAML message catalog
// usable as a validation.Translator.
package render
