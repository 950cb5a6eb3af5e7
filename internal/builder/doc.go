/*
Package builder defines the contract between annotations and flows.

Every annotation module (Kubernetes infrastructure, Dask task runner, S3
storage, flow metadata) exposes a type that implements Builder. A builder
knows how to turn its own parameters into exactly one configuration
fragment; it knows nothing about other annotations or about how fragments
are merged. That separation keeps annotations independently authored and
independently testable.

Apply replaces decorator nesting with an explicit ordered list. The call

	builder.Apply(ctx, handle, storage, infra)

is equivalent to wrapping the flow with storage first and infra outermost:
infra's fragment is applied after storage's, so where they touched the same
category and field, infra would win.
*/
package builder
