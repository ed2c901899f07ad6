// Package pad defines the PAD (Problem Analysis Diagram) node model and its
// JSON wire encoding.
//
// A diagram is a tree of nodes built from six closed kinds:
//
//   - Sequence: ordered composition of steps
//   - Block: a named unit of work (a function)
//   - If: binary branch with optional else
//   - Loop: pre-tested or ranged iteration
//   - Command: an atomic, non-decomposed statement
//   - Error: a terminal failure report (root-only in practice)
//
// The tree is finite and acyclic: it is produced by a single structural
// recursion over a parsed source file, each edge exclusively owned by its
// parent. Nodes are never mutated after construction.
//
// # Wire format
//
// Nodes serialize as a tagged union: a "type" discriminator holding the
// lowercase kind name, followed by the kind's own fields. Optional fields
// are omitted entirely when unset ("else_block" is never null). This shape
// is a cross-boundary contract consumed by external renderers and must stay
// stable.
package pad

import "encoding/json"

// Kind identifies a node variant.
type Kind string

// The closed set of node kinds. These values double as the wire
// discriminator, so they are lowercase snake_case.
const (
	KindSequence Kind = "sequence"
	KindBlock    Kind = "block"
	KindIf       Kind = "if"
	KindLoop     Kind = "loop"
	KindCommand  Kind = "command"
	KindError    Kind = "error"
)

// Node is one PAD diagram node. Exactly one kind's field set is populated;
// use the constructors rather than filling the struct directly.
type Node struct {
	Kind Kind

	// Block and Command label text.
	Label string

	// If and Loop condition text.
	Condition string

	// Error message text.
	Message string

	// Sequence and Block children, in source order.
	Children []*Node

	// If branches. Else is nil when the source has no else clause.
	Then *Node
	Else *Node

	// Loop body.
	Body *Node
}

// Sequence creates an ordered composition of zero or more steps.
func Sequence(children ...*Node) *Node {
	return &Node{Kind: KindSequence, Children: children}
}

// Block creates a named unit of work whose single child is the body
// sequence.
func Block(label string, body *Node) *Node {
	return &Node{Kind: KindBlock, Label: label, Children: []*Node{body}}
}

// If creates a binary branch. Pass elseBlock as nil when the source has no
// else clause; it will be omitted from the wire form rather than emitted as
// null.
func If(condition string, thenBlock, elseBlock *Node) *Node {
	return &Node{Kind: KindIf, Condition: condition, Then: thenBlock, Else: elseBlock}
}

// Loop creates an iteration node covering both pre-tested and ranged loops.
func Loop(condition string, body *Node) *Node {
	return &Node{Kind: KindLoop, Condition: condition, Body: body}
}

// Command creates an atomic step with the given label.
func Command(label string) *Node {
	return &Node{Kind: KindCommand, Label: label}
}

// Error creates a terminal failure node.
func Error(message string) *Node {
	return &Node{Kind: KindError, Message: message}
}

// MarshalJSON encodes the node as its tagged-union wire form. The tag field
// is written first, then the variant's own fields. An unknown kind is an
// encoding error; Encode turns that into the fallback payload.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindSequence:
		return json.Marshal(struct {
			Type     Kind    `json:"type"`
			Children []*Node `json:"children"`
		}{n.Kind, nonNil(n.Children)})
	case KindBlock:
		return json.Marshal(struct {
			Type     Kind    `json:"type"`
			Label    string  `json:"label"`
			Children []*Node `json:"children"`
		}{n.Kind, n.Label, nonNil(n.Children)})
	case KindIf:
		return json.Marshal(struct {
			Type      Kind   `json:"type"`
			Condition string `json:"condition"`
			Then      *Node  `json:"then_block"`
			Else      *Node  `json:"else_block,omitempty"`
		}{n.Kind, n.Condition, n.Then, n.Else})
	case KindLoop:
		return json.Marshal(struct {
			Type      Kind   `json:"type"`
			Condition string `json:"condition"`
			Body      *Node  `json:"body"`
		}{n.Kind, n.Condition, n.Body})
	case KindCommand:
		return json.Marshal(struct {
			Type  Kind   `json:"type"`
			Label string `json:"label"`
		}{n.Kind, n.Label})
	case KindError:
		return json.Marshal(struct {
			Type    Kind   `json:"type"`
			Message string `json:"message"`
		}{n.Kind, n.Message})
	}
	return nil, &UnknownKindError{Kind: n.Kind}
}

// nonNil ensures child lists encode as [] rather than null.
func nonNil(children []*Node) []*Node {
	if children == nil {
		return []*Node{}
	}
	return children
}

// UnknownKindError reports a node whose kind is outside the closed set.
// Reaching it means a Node was built by hand instead of via a constructor.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return "pad: unknown node kind " + string(e.Kind)
}
