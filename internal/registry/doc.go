// Package registry provides the central "glue" for the annotation system.
//
// The Registry stores two mappings: annotation block kinds (e.g.
// "infra/kubernetes") to the Go factories that construct their builders, and
// fragment categories to the merge policy the composition engine applies to
// them. During application startup the registry is populated by the compiled-in
// modules and then treated as read-only.
//
// Representing the registry as an explicit constructed object, rather than
// module-level state, keeps composition a pure, testable function of its
// inputs.
package registry
