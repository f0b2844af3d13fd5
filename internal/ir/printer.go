package ir

import (
	"fmt"
	"strings"
)

// Print renders stream in its canonical textual form:
//
//	NNN: OPCODE [operand]
//
// where operand is an integer for PushConst, an identifier for
// PushVar/StoreVar, and a quoted string for PushStringLit. This is an
// external collaborator (a pretty-printer) over the IR stream, not part of
// the generation contract itself.
func Print(stream Stream) string {
	var sb strings.Builder
	for i, inst := range stream {
		sb.WriteString(PrintInstruction(i, inst))
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintInstruction renders a single instruction in the same "NNN: OPCODE
// [operand]" shape as Print, without a trailing newline. Used by Print
// itself and by the VM's instruction-level tracer.
func PrintInstruction(i int, inst Instruction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%03d: %s", i, inst.Op)
	switch inst.Op {
	case PushConst:
		fmt.Fprintf(&sb, " %d", inst.Int)
	case PushVar, StoreVar:
		fmt.Fprintf(&sb, " %s", inst.Name)
	case PushStringLit:
		fmt.Fprintf(&sb, " %q", inst.Str)
	}
	return sb.String()
}
