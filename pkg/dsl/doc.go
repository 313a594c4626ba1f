/*
Package dsl provides a Go DSL for programmatically constructing layer documents.

It allows developers to describe a canvas (layers, their nesting and group
metadata) with a fluent builder instead of YAML files or a Loam directory.
This is particularly useful for tests, examples and generated canvases.

Example usage:

	b := dsl.New()

	b.Layer("background").Title("Background")

	hero := b.Group("hero").Title("Hero").Meta("locked", true)
	hero.Layer("title").CSS("left: 10px; top: 20px")
	hero.Group("text").Layer("subtitle")

	// The resulting source can be passed to scena.New via scena.WithSource.
	src, err := b.Build()
*/
package dsl
