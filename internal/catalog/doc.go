// Package catalog maps arbitrary colors to human readable names.
//
// A Catalog is built from a Dataset of three tables:
//
//	colors: hex   -> {shade id, title}
//	shades: id    -> {representative hex, base id}
//	bases:  id    -> {representative hex, title}
//
// Every color therefore resolves to a title ("Tomato"), a shade group and a
// base family ("Orange"). The embedded default dataset covers the CSS/X11
// named colors.
//
// # Classification
//
// Classify performs a linear nearest-neighbor scan. The distance combines the
// squared RGB difference with twice the squared HSL difference; see Classify
// for the formula. Ties resolve to the earliest entry in dataset order, so
// results are deterministic for a given dataset.
//
// # Lifecycle
//
// Catalogs are created with New and passed to the components that need them.
// The index is built once (Build, or implicitly on first use) and never
// mutated afterwards, so reads need no locking.
package catalog
