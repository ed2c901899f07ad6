package transform

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yanqirenshi/padgen/pkg/pad"
	"github.com/yanqirenshi/padgen/pkg/syntax"
)

// innerItemLabel is the fixed label for item definitions nested inside a
// function body. Item nesting is deliberately not analyzed; the statement
// degrades to an opaque command instead.
const innerItemLabel = "Inner item not supported"

// innerItemTypes are the grammar node types that declare items in statement
// position. They map to the fixed placeholder command rather than being
// recursed into.
var innerItemTypes = map[string]bool{
	"function_item":            true,
	"struct_item":              true,
	"enum_item":                true,
	"union_item":               true,
	"type_item":                true,
	"trait_item":               true,
	"impl_item":                true,
	"mod_item":                 true,
	"const_item":               true,
	"static_item":              true,
	"use_declaration":          true,
	"extern_crate_declaration": true,
	"foreign_mod_item":         true,
	"macro_definition":         true,
	"attribute_item":           true,
	"inner_attribute_item":     true,
	"associated_type":          true,
}

// mapper converts syntax nodes of one parsed file into PAD nodes. It is a
// pure structural recursion: every statement and expression maps to exactly
// one node, with an unconditional fallback to Command, so mapping cannot
// fail on a valid parse.
type mapper struct {
	file *syntax.File
}

// MapFunction converts one function definition into a Block node labeled
// "fn <name>()" whose single child is the Sequence produced from the
// function body. Parameters and return types are intentionally dropped from
// the label for visual compactness.
func MapFunction(file *syntax.File, fn *sitter.Node) *pad.Node {
	m := &mapper{file: file}

	label := "fn ()"
	if name := fn.ChildByFieldName("name"); name != nil {
		label = "fn " + file.Text(name) + "()"
	}

	body := fn.ChildByFieldName("body")
	if body == nil {
		return pad.Block(label, pad.Sequence())
	}
	return pad.Block(label, m.mapBlock(body))
}

// mapBlock maps a { ... } block to a Sequence of its statements in source
// order. The block itself is transparent: it contributes no node of its
// own. Comments and stray semicolons contribute nothing.
func (m *mapper) mapBlock(block *sitter.Node) *pad.Node {
	var children []*pad.Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		if node := m.mapStmt(block.NamedChild(i)); node != nil {
			children = append(children, node)
		}
	}
	return pad.Sequence(children...)
}

// mapStmt maps one statement to its PAD node, or nil for statements that
// carry no content (comments, empty statements).
func (m *mapper) mapStmt(stmt *sitter.Node) *pad.Node {
	switch stmt.Type() {
	case "line_comment", "block_comment", "empty_statement":
		return nil

	case "let_declaration":
		return pad.Command(m.file.Text(stmt))

	case "macro_invocation":
		return pad.Command(m.file.Text(stmt))

	case "expression_statement":
		expr := stmt.NamedChild(0)
		if expr == nil {
			return pad.Command(m.file.Text(stmt))
		}
		return m.mapExpr(expr)
	}

	if innerItemTypes[stmt.Type()] {
		return pad.Command(innerItemLabel)
	}

	// A block's trailing expression appears unwrapped.
	return m.mapExpr(stmt)
}

// mapExpr maps one expression to its PAD node. Control-flow expressions map
// to If and Loop; a bare block recurses transparently; every other
// expression kind falls through to a Command carrying its re-emitted text,
// which keeps the mapping total.
func (m *mapper) mapExpr(expr *sitter.Node) *pad.Node {
	switch expr.Type() {
	case "if_expression":
		return m.mapIf(expr)

	case "while_expression":
		condition := ""
		if cond := expr.ChildByFieldName("condition"); cond != nil {
			condition = m.file.Text(cond)
		}
		return pad.Loop(condition, m.mapBody(expr))

	case "for_expression":
		return pad.Loop(m.forCondition(expr), m.mapBody(expr))

	case "block":
		return m.mapBlock(expr)
	}

	return pad.Command(m.file.Text(expr))
}

// mapIf maps an if expression. The else branch, when present, recurses via
// expression mapping: a plain else block becomes a Sequence, while an
// else-if arm becomes a nested If under else_block. Chains therefore nest
// to the depth of their arms rather than flattening. An absent else leaves
// the field nil so it is omitted from the wire form.
func (m *mapper) mapIf(expr *sitter.Node) *pad.Node {
	condition := ""
	if cond := expr.ChildByFieldName("condition"); cond != nil {
		condition = normalizeCondition(m.file.Text(cond))
	}

	thenBlock := pad.Sequence()
	if consequence := expr.ChildByFieldName("consequence"); consequence != nil {
		thenBlock = m.mapBlock(consequence)
	}

	var elseBlock *pad.Node
	if alt := expr.ChildByFieldName("alternative"); alt != nil {
		if arm := elseArm(alt); arm != nil {
			elseBlock = m.mapExpr(arm)
		}
	}

	return pad.If(condition, thenBlock, elseBlock)
}

// elseArm returns the arm node of an else clause: its block or trailing
// if_expression. Comments between the else keyword and the arm surface as
// named children of the clause, so the first named child cannot be taken
// blindly.
func elseArm(alt *sitter.Node) *sitter.Node {
	for i := 0; i < int(alt.NamedChildCount()); i++ {
		child := alt.NamedChild(i)
		if t := child.Type(); t == "line_comment" || t == "block_comment" {
			continue
		}
		return child
	}
	return nil
}

// mapBody maps a loop body block, tolerating a missing field with an empty
// Sequence.
func (m *mapper) mapBody(expr *sitter.Node) *pad.Node {
	body := expr.ChildByFieldName("body")
	if body == nil {
		return pad.Sequence()
	}
	return m.mapBlock(body)
}

// forCondition synthesizes the condition text of a ranged loop as
// "for <pattern> in <iterable>" from the independently re-emitted pattern
// and iterable. The text is constructed, not sliced whole, so the loop
// header reads uniformly regardless of source formatting.
func (m *mapper) forCondition(expr *sitter.Node) string {
	pattern, iterable := "", ""
	if pat := expr.ChildByFieldName("pattern"); pat != nil {
		pattern = m.file.Text(pat)
	}
	if value := expr.ChildByFieldName("value"); value != nil {
		iterable = m.file.Text(value)
	}
	return "for " + pattern + " in " + iterable
}

// normalizeCondition collapses whitespace runs (a condition may span lines)
// and rejoins spaced member-access tokens ("a . b" -> "a.b") so condition
// labels render on one clean line.
func normalizeCondition(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, " . ", ".")
}
