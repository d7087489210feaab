// Package form assembles descriptors into a live form and drives the submit
// lifecycle:
//
//	Idle -> Collecting -> Validating -> Invalid | Accepted -> Idle
//
// Build creates one widget per descriptor through a widgets.Factory, in
// descriptor order, and returns a Handle that owns those widgets. Submit
// collects every widget value, validates it, clears stale error presentation
// and then either applies the new errors or hands the data to the submit
// handler. The whole cycle is synchronous; a Handle is meant to be driven from
// a single goroutine, the way a UI event loop would.
package form
