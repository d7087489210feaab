// Package openapi describes form submissions as OpenAPI 3 documents. SchemaFor
// maps one form's descriptors to an object schema; Document assembles the
// submission endpoints of a whole template library. kin-openapi types are
// returned directly so callers can extend or validate them.
package openapi
