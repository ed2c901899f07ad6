// Package syntax parses Rust source text into a tree-sitter syntax tree and
// re-emits tree fragments as source-equivalent text.
//
// The package wraps the grammar-level concerns the transformation core
// treats as external: parsing with position-annotated syntax errors, and
// total, non-failing re-emission of any node back into display text.
// Re-emission is byte-range slicing of the original source, so the emitted
// text is source-equivalent by construction.
package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// File is a successfully parsed Rust source file. It owns the underlying
// tree-sitter tree; call Close when done with it and every node derived
// from it.
type File struct {
	src  []byte
	tree *sitter.Tree
}

// SyntaxError reports the first point at which the grammar rejected the
// input. Line and Column are 1-based.
type SyntaxError struct {
	Line   uint32
	Column uint32
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Detail, e.Line, e.Column)
}

// Parse parses src as a Rust source file.
//
// Tree-sitter recovers from malformed input by inserting ERROR and MISSING
// nodes instead of failing, so a parse is accepted only when the resulting
// tree is error-free. Otherwise Parse returns a *SyntaxError located at the
// first such node.
func Parse(ctx context.Context, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		serr := firstError(root, src)
		if serr == nil {
			serr = &SyntaxError{Line: 1, Column: 1, Detail: "invalid syntax"}
		}
		tree.Close()
		return nil, serr
	}

	return &File{src: src, tree: tree}, nil
}

// Root returns the source_file node.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Text re-emits a node as source-equivalent text by slicing its byte range
// from the original input. It is total: any node of this file yields a
// string.
func (f *File) Text(n *sitter.Node) string {
	return n.Content(f.src)
}

// Close releases the underlying tree. Nodes obtained from the file are
// invalid afterwards.
func (f *File) Close() {
	f.tree.Close()
}

// firstError locates the first ERROR or MISSING node in document order and
// builds a SyntaxError from it. Only subtrees flagged with HasError are
// descended, so the walk touches a small slice of the tree.
func firstError(node *sitter.Node, src []byte) *SyntaxError {
	if node.IsMissing() {
		return errorAt(node, fmt.Sprintf("missing %s", node.Type()))
	}
	if node.IsError() && node.ChildCount() == 0 {
		return errorAt(node, fmt.Sprintf("unexpected %q", node.Content(src)))
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if serr := firstError(child, src); serr != nil {
			return serr
		}
	}

	if node.IsError() {
		return errorAt(node, "unexpected token")
	}
	return nil
}

func errorAt(node *sitter.Node, detail string) *SyntaxError {
	point := node.StartPoint()
	return &SyntaxError{
		Line:   point.Row + 1,
		Column: point.Column + 1,
		Detail: detail,
	}
}
