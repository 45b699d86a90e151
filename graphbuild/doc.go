// Package graphbuild is the mutable counterpart of graph.View: a label-keyed
// scratch graph for tests and fixture construction, frozen into a View by
// Compile. See builder.go for the full contract.
package graphbuild
