package spade

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// vmSummary renders a deterministic, snapshot-friendly view of a finished
// VM: its terminal state, variable table, and string pool.
func vmSummary(p *Pipeline) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "state: %s\n", p.VM.State())
	if p.VM.Err() != nil {
		fmt.Fprintf(&sb, "error: %s (%s)\n", p.VM.Err().Code, p.VM.Err())
	}
	fmt.Fprintln(&sb, "variables:")
	for _, v := range p.VM.Variables() {
		fmt.Fprintf(&sb, "  %s = %d\n", v.Name, v.Value)
	}
	fmt.Fprintln(&sb, "strings:")
	for i, s := range p.VM.Strings() {
		fmt.Fprintf(&sb, "  [%d] %q\n", i, s)
	}
	return sb.String()
}

func snapshot(t *testing.T, source string) {
	t.Helper()
	p := mustRun(t, source)
	snaps.MatchSnapshot(t, vmSummary(p))
}

func TestSnapshotArithmeticPrecedence(t *testing.T) {
	snapshot(t, "int x = 2 + 3 * 4;")
}

func TestSnapshotRightAssociativeExponent(t *testing.T) {
	snapshot(t, "int y = 2 ** 3 ** 2;")
}

func TestSnapshotBooleanLogic(t *testing.T) {
	snapshot(t, "bool b = 1 < 2 && 3 == 3;")
}

func TestSnapshotStringConcatenation(t *testing.T) {
	snapshot(t, `string s = "hi"; string t = s + " world";`)
}

func TestSnapshotAssignmentUpdatesInPlace(t *testing.T) {
	snapshot(t, "int a = 5; a = a + 1; a = a * 2;")
}

func TestSnapshotDivisionByZero(t *testing.T) {
	p := mustRun(t, "int z = 10 / 0;")
	snaps.MatchSnapshot(t, vmSummary(p))
}
