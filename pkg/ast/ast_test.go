package ast

import (
	"bytes"
	"strings"
	"testing"

	"lacsap/pkg/token"
	"lacsap/pkg/types"
)

func TestWalkVisitsEveryDescendant(t *testing.T) {
	x := NewIdent(token.Position{Line: 1}, "x")
	lit := NewIntLit(token.Position{Line: 1}, 3)
	assign := NewAssign(token.Position{Line: 1}, x, lit)
	block := NewBlock(token.Position{Line: 1}, []*Node{assign})

	var visited []Kind
	Walk(block, func(n *Node) { visited = append(visited, n.Kind) })

	want := []Kind{Block, Assign, Ident, IntLit}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited[%d] = %v, want %v", i, visited[i], want[i])
		}
	}
}

func TestIsLValue(t *testing.T) {
	pos := token.Position{Line: 1}
	cases := []struct {
		node *Node
		want bool
	}{
		{NewIdent(pos, "x"), true},
		{NewDeref(pos, NewIdent(pos, "p")), true},
		{NewArrayAccess(pos, NewIdent(pos, "a"), []*Node{NewIntLit(pos, 1)}), true},
		{NewFieldAccess(pos, NewIdent(pos, "r"), "f"), true},
		{NewIntLit(pos, 1), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := IsLValue(c.node); got != c.want {
			t.Fatalf("IsLValue(%v) = %v, want %v", c.node, got, c.want)
		}
	}
}

func TestDumpIncludesNodeSummaries(t *testing.T) {
	pos := token.Position{File: "p.pas", Line: 2, Col: 5}
	decl := NewVarDecl(pos, []string{"x", "y"}, types.NewIntegerType())

	var buf bytes.Buffer
	Dump(&buf, decl)

	out := buf.String()
	if !strings.Contains(out, "VarDecl") {
		t.Fatalf("dump missing node kind: %q", out)
	}
	if !strings.Contains(out, "x,y") {
		t.Fatalf("dump missing declared names: %q", out)
	}
	if !strings.Contains(out, "p.pas:2:5") {
		t.Fatalf("dump missing position: %q", out)
	}
}
