package ir

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spade-lang/spade/internal/parser"
	"github.com/spade-lang/spade/internal/semantic"
)

func generate(t *testing.T, src string) Stream {
	t.Helper()
	p := parser.New(src, "t.sp")
	prog := p.ParseProgram()
	if p.Errors().HasErrors() {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	scope, errs := semantic.New(src, "t.sp").Analyze(prog)
	if errs.HasErrors() {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	stream, err := New(scope).Generate(prog)
	if err != nil {
		t.Fatalf("unexpected generation error: %v", err)
	}
	return stream
}

func TestGenerateEndsInHalt(t *testing.T) {
	stream := generate(t, `int x = 1;`)
	if stream[len(stream)-1].Op != Halt {
		t.Fatalf("expected last instruction to be HALT, got %s", stream[len(stream)-1].Op)
	}
}

func TestGeneratePostOrderArithmetic(t *testing.T) {
	stream := generate(t, `int x = 2 + 3 * 4;`)
	// Post-order: PUSH_CONST 2, PUSH_CONST 3, PUSH_CONST 4, MUL, ADD, STORE_VAR x, HALT
	wantOps := []OpCode{PushConst, PushConst, PushConst, Mul, Add, StoreVar, Halt}
	if len(stream) != len(wantOps) {
		t.Fatalf("got %d instructions, want %d:\n%s", len(stream), len(wantOps), Print(stream))
	}
	for i, op := range wantOps {
		if stream[i].Op != op {
			t.Fatalf("instruction %d: got %s, want %s", i, stream[i].Op, op)
		}
	}
}

func TestStringVsNumericPlusDisambiguation(t *testing.T) {
	stream := generate(t, `string s = "hi"; string t = s + " world";`)
	var sawConcat, sawAdd bool
	for _, inst := range stream {
		if inst.Op == Concat {
			sawConcat = true
		}
		if inst.Op == Add {
			sawAdd = true
		}
	}
	if !sawConcat {
		t.Fatalf("expected a CONCAT instruction:\n%s", Print(stream))
	}
	if sawAdd {
		t.Fatalf("did not expect an ADD instruction for string '+':\n%s", Print(stream))
	}
}

func TestPrinterFormat(t *testing.T) {
	stream := generate(t, `int x = 1;`)
	out := Print(stream)
	if !strings.Contains(out, "000: PUSH_CONST 1") {
		t.Fatalf("unexpected printer output:\n%s", out)
	}
	if !strings.Contains(out, "STORE_VAR x") {
		t.Fatalf("unexpected printer output:\n%s", out)
	}
}

func TestPrinterSnapshotArithmetic(t *testing.T) {
	stream := generate(t, `int x = 2 + 3 * 4;`)
	snaps.MatchSnapshot(t, Print(stream))
}

func TestPrinterSnapshotStringConcat(t *testing.T) {
	stream := generate(t, `string s = "hi"; string t = s + " world";`)
	snaps.MatchSnapshot(t, Print(stream))
}

func TestPrinterSnapshotExponentRightAssoc(t *testing.T) {
	stream := generate(t, `int y = 2 ** 3 ** 2;`)
	snaps.MatchSnapshot(t, Print(stream))
}
