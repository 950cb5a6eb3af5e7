/*
Package compose implements the composition engine: the mechanism that turns
the ordered list of configuration fragments on a flow handle into a single
coherent deployment specification.

The engine works in phases:

 1. Grouping: fragments are bucketed by category, preserving their
    application order within each bucket.

 2. Merge within category: later (outer) fragments override earlier ones
    field by field; a field present only in an earlier fragment survives.
    Fields the category policy marks strict fail composition instead of
    being silently overridden when two fragments disagree.

 3. Gap filling: the metadata section is seeded from inference over the
    flow callable's own declared attributes, with explicit metadata fields
    laid on top, and derived fields (tags, infra namespace) are filled in.

 4. Validation: the registry's per-category required fields are enforced;
    the first unresolved one fails the build.

Categories are orthogonal: each becomes a disjoint section of the resulting
specification and no cross-category override ever occurs. The whole pipeline
is a pure function of the fragment list and the callable, so building twice
yields byte-identical specifications.
*/
package compose
