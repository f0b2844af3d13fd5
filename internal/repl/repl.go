// Package repl implements line-continuation buffering for interactive
// sessions. It only ever hands a finished source buffer to the compiler
// pipeline; it never inspects tokens, the AST, or IR itself.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt is the interactive prompt string.
const Prompt = "spade> "

// ExitCommand is the literal line that terminates the interactive session.
const ExitCommand = "exit"

// Buffer accumulates backslash-continued lines into one source string.
// A line whose last non-whitespace character is '\' continues onto the
// next line, with the backslash replaced by a space.
type Buffer struct {
	lines []string
}

// Feed appends line to the buffer after resolving continuation, returning
// the joined source so far and whether another line is still expected.
func (b *Buffer) Feed(line string) (source string, continued bool) {
	trimmed := strings.TrimRight(line, " \t\r\n")
	if strings.HasSuffix(trimmed, `\`) {
		b.lines = append(b.lines, trimmed[:len(trimmed)-1]+" ")
		return "", true
	}
	b.lines = append(b.lines, trimmed)
	joined := strings.Join(b.lines, "")
	b.lines = nil
	return joined, false
}

// Run drives the interactive loop: prompt, read, join
// continuations, and invoke exec for each completed buffer. It stops on the
// literal line "exit" or when in is exhausted.
func Run(in io.Reader, out io.Writer, exec func(source string) error) error {
	scanner := bufio.NewScanner(in)
	var buf Buffer
	first := true

	for {
		if first {
			fmt.Fprint(out, Prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == ExitCommand && len(buf.lines) == 0 {
			return nil
		}

		source, continued := buf.Feed(line)
		if continued {
			first = false
			continue
		}
		first = true

		if strings.TrimSpace(source) == "" {
			continue
		}
		if err := exec(source); err != nil {
			fmt.Fprintf(out, "%s\n", err)
		}
	}
}
