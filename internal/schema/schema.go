// Package schema declares the HCL structures of a deployment file.
package schema

import "github.com/hashicorp/hcl/v2"

// FlowFile represents the top-level structure of a deployment file,
// containing one or more flow blocks.
type FlowFile struct {
	Flows []*Flow `hcl:"flow,block"`
}

// Flow represents a `flow "<name>"` block. Its body holds the optional
// description attribute and the ordered annotation blocks; the body is kept
// raw because annotation blocks must be processed in source order, which
// per-type decoding would lose.
type Flow struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// FlowBodySchema is the schema for the content of a flow block. Annotation
// block types mirror the fragment categories; all except metadata carry a
// kind label selecting the registered builder.
var FlowBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "infra", LabelNames: []string{"kind"}},
		{Type: "task_runner", LabelNames: []string{"kind"}},
		{Type: "storage", LabelNames: []string{"kind"}},
		{Type: "metadata"},
	},
}
