// Package vm implements Spade's register-less stack virtual machine
package vm

import (
	"fmt"
	"io"
	"math"

	"github.com/spade-lang/spade/internal/ir"
)

// State is the VM's run state.
type State int

const (
	Running State = iota
	Halted
	Error
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// DefaultStackCapacity is the VM's fixed initial value-stack capacity.
// Pushing beyond it fails with StackOverflow — the reference shape does
// not grow the value stack.
const DefaultStackCapacity = 1024

// variable is one (name, value) pair of the variable table.
type variable struct {
	name  string
	value int32
}

// VM is Spade's stack machine: a value stack, an append-only string pool,
// and an ordered variable table, executed against an ir.Stream.
type VM struct {
	stack    []int32
	stackCap int

	strings []string

	vars    []variable
	varIdx  map[string]int

	pc    int
	state State
	err   *RuntimeError

	tracer io.Writer
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithTracer makes the VM write one line per executed instruction to w,
// in the same shape as ir.Print (consumed by the CLI's --trace flag).
func WithTracer(w io.Writer) Option {
	return func(v *VM) { v.tracer = w }
}

// New creates a VM with the default stack capacity.
func New(opts ...Option) *VM { return NewWithCapacity(DefaultStackCapacity, opts...) }

// NewWithCapacity creates a VM whose value stack may never exceed cap
// entries.
func NewWithCapacity(cap int, opts ...Option) *VM {
	v := &VM{
		stackCap: cap,
		varIdx:   make(map[string]int),
		state:    Running,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the VM's current run state.
func (v *VM) State() State { return v.state }

// Err returns the runtime error that halted execution in the Error state,
// or nil.
func (v *VM) Err() *RuntimeError { return v.err }

// Stack returns a snapshot of the current value stack (bottom to top).
func (v *VM) Stack() []int32 {
	out := make([]int32, len(v.stack))
	copy(out, v.stack)
	return out
}

// Strings returns a snapshot of the string pool.
func (v *VM) Strings() []string {
	out := make([]string, len(v.strings))
	copy(out, v.strings)
	return out
}

// Variables returns the variable table as ordered (name, value) pairs.
func (v *VM) Variables() []struct {
	Name  string
	Value int32
} {
	out := make([]struct {
		Name  string
		Value int32
	}, len(v.vars))
	for i, entry := range v.vars {
		out[i] = struct {
			Name  string
			Value int32
		}{entry.name, entry.value}
	}
	return out
}

// Lookup returns the current value of a variable table entry.
func (v *VM) Lookup(name string) (int32, bool) {
	idx, ok := v.varIdx[name]
	if !ok {
		return 0, false
	}
	return v.vars[idx].value, true
}

func (v *VM) push(val int32) bool {
	if len(v.stack) >= v.stackCap {
		v.fail(StackOverflow, "value stack overflow (capacity %d)", v.stackCap)
		return false
	}
	v.stack = append(v.stack, val)
	return true
}

func (v *VM) pop() (int32, bool) {
	if len(v.stack) == 0 {
		v.fail(StackUnderflow, "pop from empty value stack")
		return 0, false
	}
	top := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return top, true
}

func (v *VM) fail(code ErrorCode, format string, args ...any) {
	v.err = newError(v.pc, code, format, args...)
	v.state = Error
}

func (v *VM) storeVar(name string, val int32) {
	if idx, ok := v.varIdx[name]; ok {
		v.vars[idx].value = val
		return
	}
	v.varIdx[name] = len(v.vars)
	v.vars = append(v.vars, variable{name: name, value: val})
}

// Run executes stream from instruction 0 until HALT or an error, and
// returns the terminal state.
func (v *VM) Run(stream ir.Stream) State {
	v.pc = 0
	v.state = Running

	for v.state == Running {
		if v.pc < 0 || v.pc >= len(stream) {
			// Running off the end of the stream without HALT is itself an
			// invalid program; treat it the same as an unknown opcode.
			v.fail(InvalidInstruction, "program counter %d out of bounds (stream length %d)", v.pc, len(stream))
			break
		}
		inst := stream[v.pc]
		if v.tracer != nil {
			fmt.Fprintln(v.tracer, ir.PrintInstruction(v.pc, inst))
		}
		v.execute(inst)
		if v.state != Running {
			break
		}
		v.pc++
	}
	return v.state
}

func (v *VM) execute(inst ir.Instruction) {
	switch inst.Op {
	case ir.PushConst:
		v.push(inst.Int)
	case ir.PushVar:
		val, ok := v.varIdx[inst.Name]
		if !ok {
			v.fail(VariableNotFound, "undefined variable %q", inst.Name)
			return
		}
		v.push(v.vars[val].value)
	case ir.StoreVar:
		val, ok := v.pop()
		if !ok {
			return
		}
		v.storeVar(inst.Name, val)
	case ir.PushStringLit:
		idx := len(v.strings)
		v.strings = append(v.strings, inst.Str)
		v.push(int32(idx))
	case ir.Add:
		v.binaryArith(func(l, r int32) int32 { return l + r })
	case ir.Sub:
		v.binaryArith(func(l, r int32) int32 { return l - r })
	case ir.Mul:
		v.binaryArith(func(l, r int32) int32 { return l * r })
	case ir.Div:
		v.divOrMod(func(l, r int32) int32 { return l / r })
	case ir.Mod:
		v.divOrMod(func(l, r int32) int32 { return l % r })
	case ir.Pow:
		v.execPow()
	case ir.Eq:
		v.compare(func(l, r int32) bool { return l == r })
	case ir.Ne:
		v.compare(func(l, r int32) bool { return l != r })
	case ir.Lt:
		v.compare(func(l, r int32) bool { return l < r })
	case ir.Gt:
		v.compare(func(l, r int32) bool { return l > r })
	case ir.Le:
		v.compare(func(l, r int32) bool { return l <= r })
	case ir.Ge:
		v.compare(func(l, r int32) bool { return l >= r })
	case ir.And:
		v.compare(func(l, r int32) bool { return l != 0 && r != 0 })
	case ir.Or:
		v.compare(func(l, r int32) bool { return l != 0 || r != 0 })
	case ir.Not:
		val, ok := v.pop()
		if !ok {
			return
		}
		v.push(boolInt(val == 0))
	case ir.Neg:
		val, ok := v.pop()
		if !ok {
			return
		}
		v.push(-val)
	case ir.Concat:
		v.execConcat()
	case ir.Halt:
		v.state = Halted
	default:
		v.fail(InvalidInstruction, "unknown opcode %v", inst.Op)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (v *VM) binaryArith(op func(l, r int32) int32) {
	r, ok := v.pop()
	if !ok {
		return
	}
	l, ok := v.pop()
	if !ok {
		return
	}
	// Overflow wraps silently — Go's fixed-width int32
	// arithmetic already wraps, so no extra handling is needed.
	v.push(op(l, r))
}

func (v *VM) divOrMod(op func(l, r int32) int32) {
	r, ok := v.pop()
	if !ok {
		return
	}
	if r == 0 {
		v.fail(InvalidInstruction, "division or modulo by zero")
		return
	}
	l, ok := v.pop()
	if !ok {
		return
	}
	v.push(op(l, r))
}

func (v *VM) compare(op func(l, r int32) bool) {
	r, ok := v.pop()
	if !ok {
		return
	}
	l, ok := v.pop()
	if !ok {
		return
	}
	v.push(boolInt(op(l, r)))
}

func (v *VM) execConcat() {
	r, ok := v.pop()
	if !ok {
		return
	}
	l, ok := v.pop()
	if !ok {
		return
	}
	rs, ok := v.stringAt(r)
	if !ok {
		return
	}
	ls, ok := v.stringAt(l)
	if !ok {
		return
	}
	idx := len(v.strings)
	v.strings = append(v.strings, ls+rs)
	v.push(int32(idx))
}

func (v *VM) stringAt(idx int32) (string, bool) {
	if idx < 0 || int(idx) >= len(v.strings) {
		v.fail(StringPoolOOB, "string pool index %d out of bounds (pool size %d)", idx, len(v.strings))
		return "", false
	}
	return v.strings[idx], true
}

// execPow implements the safe-power procedure: pop the
// exponent (top of stack, pushed last by the generator), then the base.
func (v *VM) execPow() {
	e, ok := v.pop()
	if !ok {
		return
	}
	b, ok := v.pop()
	if !ok {
		return
	}
	result, err := safePow(b, e)
	if err != nil {
		v.fail(err.code, "%s", err.msg)
		return
	}
	v.push(result)
}

type powError struct {
	code ErrorCode
	msg  string
}

func (e *powError) Error() string { return e.msg }

// safePow implements a bounded integer exponentiation:
//   - negative exponent: domain error
//   - e == 0: 1
//   - b in {0,1}: b
//   - b == -1: alternates 1/-1 by parity of e
//   - e > 31: overflow
//   - |b| > 2 and e > 15: overflow
//   - otherwise: repeated multiply, failing if the running result would
//     exceed the signed 32-bit maximum
func safePow(b, e int32) (int32, *powError) {
	if e < 0 {
		return 0, &powError{PowerDomainError, "negative exponent in POW"}
	}
	if e == 0 {
		return 1, nil
	}
	if b == 0 || b == 1 {
		return b, nil
	}
	if b == -1 {
		if e%2 == 0 {
			return 1, nil
		}
		return -1, nil
	}
	if e > 31 {
		return 0, &powError{PowerOverflow, "exponent too large for safe power"}
	}
	absB := b
	if absB < 0 {
		absB = -absB
	}
	if absB > 2 && e > 15 {
		return 0, &powError{PowerOverflow, "base/exponent combination too large for safe power"}
	}

	result := int64(1)
	for i := int32(0); i < e; i++ {
		result *= int64(b)
		if result > math.MaxInt32 || result < math.MinInt32 {
			return 0, &powError{PowerOverflow, "power result exceeds signed 32-bit range"}
		}
	}
	return int32(result), nil
}
