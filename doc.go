// Package goresolve resolves a data value against a declarative,
// JSON-Schema-like schema: it fills in defaults, evaluates conditional
// sub-schemas, merges composed sub-schemas (allOf/anyOf/oneOf/not), and
// produces either a fully resolved value or a structured set of Issues with
// precise paths.
//
// The package is an in-process library boundary only: no persisted state, no
// network protocol. Independent calls to ResolveValues and ValidateValue share
// no state and are safe to run concurrently.
package goresolve
