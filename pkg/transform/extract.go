package transform

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Functions returns the function definitions at the top level of a parsed
// source file, in source order. Every other item kind (types, impls, mods,
// uses, ...) is discarded without error; given a valid parse this stage
// cannot fail.
func Functions(root *sitter.Node) []*sitter.Node {
	var fns []*sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "function_item" {
			fns = append(fns, child)
		}
	}
	return fns
}
