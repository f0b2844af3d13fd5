package repl

import (
	"strings"
	"testing"
)

func TestBufferJoinsBackslashContinuation(t *testing.T) {
	var buf Buffer
	source, continued := buf.Feed(`int x = 1 + \`)
	if !continued || source != "" {
		t.Fatalf("expected continuation, got %q %v", source, continued)
	}
	source, continued = buf.Feed(`2;`)
	if continued {
		t.Fatal("expected the buffer to complete")
	}
	if source != "int x = 1 + 2;" {
		t.Fatalf("got %q", source)
	}
}

func TestBufferSingleLineNoContinuation(t *testing.T) {
	var buf Buffer
	source, continued := buf.Feed("int x = 1;")
	if continued || source != "int x = 1;" {
		t.Fatalf("got %q %v", source, continued)
	}
}

func TestRunStopsOnExit(t *testing.T) {
	in := strings.NewReader("int x = 1;\nexit\n")
	var out strings.Builder
	var ran []string
	err := Run(in, &out, func(source string) error {
		ran = append(ran, source)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 1 || ran[0] != "int x = 1;" {
		t.Fatalf("unexpected exec calls: %v", ran)
	}
}

func TestRunJoinsMultilineInput(t *testing.T) {
	in := strings.NewReader("int x = 1 + \\\n2;\nexit\n")
	var out strings.Builder
	var ran []string
	err := Run(in, &out, func(source string) error {
		ran = append(ran, source)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 1 || ran[0] != "int x = 1 + 2;" {
		t.Fatalf("unexpected joined source: %v", ran)
	}
}
