package transform

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// wireNode mirrors the JSON wire form for assertions.
type wireNode struct {
	Type      string      `json:"type"`
	Label     string      `json:"label"`
	Condition string      `json:"condition"`
	Message   string      `json:"message"`
	Children  []*wireNode `json:"children"`
	Then      *wireNode   `json:"then_block"`
	Else      *wireNode   `json:"else_block"`
	Body      *wireNode   `json:"body"`
}

func run(t *testing.T, src string) *wireNode {
	t.Helper()
	out := Source(context.Background(), []byte(src))

	var node wireNode
	if err := json.Unmarshal([]byte(out), &node); err != nil {
		t.Fatalf("result is not valid JSON: %v\n%s", err, out)
	}
	return &node
}

// fnBody unwraps Sequence -> Block -> Sequence for single-function sources.
func fnBody(t *testing.T, root *wireNode) *wireNode {
	t.Helper()
	if root.Type != "sequence" || len(root.Children) != 1 {
		t.Fatalf("root = %s with %d children, want sequence with 1", root.Type, len(root.Children))
	}
	block := root.Children[0]
	if block.Type != "block" || len(block.Children) != 1 {
		t.Fatalf("child = %s with %d children, want block with 1", block.Type, len(block.Children))
	}
	return block.Children[0]
}

func TestSingleFunction(t *testing.T) {
	root := run(t, `fn main() { let x = 1; }`)

	if root.Type != "sequence" {
		t.Fatalf("root type = %q, want sequence", root.Type)
	}
	if len(root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(root.Children))
	}

	block := root.Children[0]
	if block.Type != "block" {
		t.Errorf("child type = %q, want block", block.Type)
	}
	if block.Label != "fn main()" {
		t.Errorf("block label = %q, want %q", block.Label, "fn main()")
	}

	body := block.Children[0]
	if body.Type != "sequence" || len(body.Children) != 1 {
		t.Fatalf("body = %s with %d children, want sequence with 1", body.Type, len(body.Children))
	}
	if cmd := body.Children[0]; cmd.Type != "command" || cmd.Label != "let x = 1;" {
		t.Errorf("binding = %s %q, want command %q", cmd.Type, cmd.Label, "let x = 1;")
	}
}

func TestNoFunction(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"type declaration only", `struct Point { x: i32, y: i32 }`},
		{"empty input", ``},
		{"use and const", "use std::fmt;\nconst N: usize = 4;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := run(t, tt.src)
			if root.Type != "error" {
				t.Fatalf("root type = %q, want error", root.Type)
			}
			if root.Message != "No function found" {
				t.Errorf("message = %q, want %q", root.Message, "No function found")
			}
		})
	}
}

func TestParseError(t *testing.T) {
	root := run(t, `fn broken( {`)

	if root.Type != "error" {
		t.Fatalf("root type = %q, want error", root.Type)
	}
	if !strings.HasPrefix(root.Message, "Parse error: ") {
		t.Errorf("message = %q, want Parse error prefix", root.Message)
	}
}

func TestIdempotence(t *testing.T) {
	src := []byte(`fn f() { if x > 0 { a(); } else { b(); } }`)
	first := Source(context.Background(), src)
	second := Source(context.Background(), src)
	if first != second {
		t.Errorf("repeated transform differs:\n%s\n%s", first, second)
	}
}

func TestIfElse(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ if x > 0 { a(); } else { b(); } }`))

	ifNode := body.Children[0]
	if ifNode.Type != "if" {
		t.Fatalf("node type = %q, want if", ifNode.Type)
	}
	if ifNode.Condition != "x > 0" {
		t.Errorf("condition = %q, want %q", ifNode.Condition, "x > 0")
	}

	then := ifNode.Then
	if then == nil || then.Type != "sequence" || len(then.Children) != 1 {
		t.Fatalf("then_block = %+v, want sequence with 1 child", then)
	}
	if cmd := then.Children[0]; cmd.Type != "command" || cmd.Label != "a()" {
		t.Errorf("then command = %s %q, want command %q", cmd.Type, cmd.Label, "a()")
	}

	els := ifNode.Else
	if els == nil || els.Type != "sequence" || len(els.Children) != 1 {
		t.Fatalf("else_block = %+v, want sequence with 1 child", els)
	}
	if cmd := els.Children[0]; cmd.Type != "command" || cmd.Label != "b()" {
		t.Errorf("else command = %s %q, want command %q", cmd.Type, cmd.Label, "b()")
	}
}

func TestIfWithoutElse(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ if ready { go_on(); } }`))

	ifNode := body.Children[0]
	if ifNode.Type != "if" {
		t.Fatalf("node type = %q, want if", ifNode.Type)
	}
	if ifNode.Else != nil {
		t.Errorf("else_block = %+v, want absent", ifNode.Else)
	}
}

func TestElseIfChain(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ if a { x(); } else if b { y(); } else { z(); } }`))

	outer := body.Children[0]
	if outer.Type != "if" || outer.Condition != "a" {
		t.Fatalf("outer = %s %q, want if %q", outer.Type, outer.Condition, "a")
	}

	// The else-if arm nests the entire next If under else_block.
	inner := outer.Else
	if inner == nil || inner.Type != "if" {
		t.Fatalf("outer else_block = %+v, want nested if", inner)
	}
	if inner.Condition != "b" {
		t.Errorf("inner condition = %q, want %q", inner.Condition, "b")
	}

	terminal := inner.Else
	if terminal == nil || terminal.Type != "sequence" {
		t.Fatalf("inner else_block = %+v, want terminal sequence", terminal)
	}
	if cmd := terminal.Children[0]; cmd.Label != "z()" {
		t.Errorf("terminal command = %q, want %q", cmd.Label, "z()")
	}
}

func TestCommentBeforeElseArm(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ if a { x(); } else /* fallthrough */ { y(); } }`))

	ifNode := body.Children[0]
	els := ifNode.Else
	if els == nil || els.Type != "sequence" || len(els.Children) != 1 {
		t.Fatalf("else_block = %+v, want sequence with 1 child", els)
	}
	if cmd := els.Children[0]; cmd.Type != "command" || cmd.Label != "y()" {
		t.Errorf("else command = %s %q, want command %q", cmd.Type, cmd.Label, "y()")
	}
}

func TestCommentBeforeElseIfArm(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ if a { x(); } else /*c*/ if b { y(); } else { z(); } }`))

	outer := body.Children[0]
	inner := outer.Else
	if inner == nil || inner.Type != "if" {
		t.Fatalf("outer else_block = %+v, want nested if", inner)
	}
	if inner.Condition != "b" {
		t.Errorf("inner condition = %q, want %q", inner.Condition, "b")
	}
	terminal := inner.Else
	if terminal == nil || terminal.Type != "sequence" || len(terminal.Children) != 1 {
		t.Fatalf("inner else_block = %+v, want terminal sequence", terminal)
	}
	if cmd := terminal.Children[0]; cmd.Label != "z()" {
		t.Errorf("terminal command = %q, want %q", cmd.Label, "z()")
	}
}

func TestForLoop(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ for i in 0..10 { step(); } }`))

	loop := body.Children[0]
	if loop.Type != "loop" {
		t.Fatalf("node type = %q, want loop", loop.Type)
	}
	if loop.Condition != "for i in 0..10" {
		t.Errorf("condition = %q, want %q", loop.Condition, "for i in 0..10")
	}
	if loop.Body == nil || loop.Body.Type != "sequence" || len(loop.Body.Children) != 1 {
		t.Fatalf("body = %+v, want sequence with 1 child", loop.Body)
	}
}

func TestWhileLoop(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ while i < 10 { i += 1; } }`))

	loop := body.Children[0]
	if loop.Type != "loop" {
		t.Fatalf("node type = %q, want loop", loop.Type)
	}
	if loop.Condition != "i < 10" {
		t.Errorf("condition = %q, want %q", loop.Condition, "i < 10")
	}
	if cmd := loop.Body.Children[0]; cmd.Type != "command" || cmd.Label != "i += 1" {
		t.Errorf("loop body = %s %q, want command %q", cmd.Type, cmd.Label, "i += 1")
	}
}

func TestFallbackTotality(t *testing.T) {
	tests := []struct {
		name  string
		stmt  string
		label string
	}{
		{"assignment", "x = x + 1;", "x = x + 1"},
		{"call", "compute(a, b);", "compute(a, b)"},
		{"method call", "items.sort();", "items.sort()"},
		{"return", "return 42;", "return 42"},
		{"match", "match v { _ => 0 };", "match v { _ => 0 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fnBody(t, run(t, "fn f(){ "+tt.stmt+" }"))
			if len(body.Children) != 1 {
				t.Fatalf("body children = %d, want 1", len(body.Children))
			}
			cmd := body.Children[0]
			if cmd.Type != "command" {
				t.Errorf("node type = %q, want command", cmd.Type)
			}
			if cmd.Label != tt.label {
				t.Errorf("label = %q, want %q", cmd.Label, tt.label)
			}
		})
	}
}

func TestMacroInvocation(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ println!("hi"); }`))

	cmd := body.Children[0]
	if cmd.Type != "command" {
		t.Fatalf("node type = %q, want command", cmd.Type)
	}
	if cmd.Label != `println!("hi")` {
		t.Errorf("label = %q, want %q", cmd.Label, `println!("hi")`)
	}
}

func TestInnerItemDegrades(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ fn nested() {} nested(); }`))

	if len(body.Children) != 2 {
		t.Fatalf("body children = %d, want 2", len(body.Children))
	}
	if cmd := body.Children[0]; cmd.Type != "command" || cmd.Label != "Inner item not supported" {
		t.Errorf("inner item = %s %q, want command %q", cmd.Type, cmd.Label, "Inner item not supported")
	}
	if cmd := body.Children[1]; cmd.Label != "nested()" {
		t.Errorf("following call = %q, want %q", cmd.Label, "nested()")
	}
}

func TestNestedBlockIsTransparent(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ { a(); b(); } }`))

	// The inner block contributes no wrapper beyond its own Sequence.
	inner := body.Children[0]
	if inner.Type != "sequence" {
		t.Fatalf("inner node = %q, want sequence", inner.Type)
	}
	if len(inner.Children) != 2 {
		t.Errorf("inner children = %d, want 2", len(inner.Children))
	}
}

func TestMultiFunction(t *testing.T) {
	root := run(t, "fn first() {}\nfn second() {}\nstruct Ignored;\nfn third() {}")

	if root.Type != "sequence" {
		t.Fatalf("root type = %q, want sequence", root.Type)
	}
	want := []string{"fn first()", "fn second()", "fn third()"}
	if len(root.Children) != len(want) {
		t.Fatalf("root children = %d, want %d", len(root.Children), len(want))
	}
	for i, label := range want {
		if root.Children[i].Type != "block" {
			t.Errorf("child %d type = %q, want block", i, root.Children[i].Type)
		}
		if root.Children[i].Label != label {
			t.Errorf("child %d label = %q, want %q", i, root.Children[i].Label, label)
		}
	}
}

func TestConditionSpansLines(t *testing.T) {
	body := fnBody(t, run(t, "fn f(){ if x\n        > 0 { a(); } }"))

	ifNode := body.Children[0]
	if ifNode.Condition != "x > 0" {
		t.Errorf("condition = %q, want %q", ifNode.Condition, "x > 0")
	}
}

func TestStatementOrderPreserved(t *testing.T) {
	body := fnBody(t, run(t, `fn f(){ a(); b(); c(); }`))

	want := []string{"a()", "b()", "c()"}
	if len(body.Children) != len(want) {
		t.Fatalf("body children = %d, want %d", len(body.Children), len(want))
	}
	for i, label := range want {
		if body.Children[i].Label != label {
			t.Errorf("child %d = %q, want %q", i, body.Children[i].Label, label)
		}
	}
}
