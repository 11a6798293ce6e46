package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTerminalAsk(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("first\r\nsecond\nlast"), &out)

	var got []string
	for {
		answer, err := term.Ask("> ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, answer)
	}

	if diff := cmp.Diff([]string{"first", "second", "last"}, got); diff != "" {
		t.Errorf("answers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("> > > > ", out.String()); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"Y\n":   true,
		"y\n":   true,
		"yes\n": false,
		"N\n":   false,
		"\n":    false,
		" y\n":  false,
	}
	for input, want := range tests {
		got, err := Confirm(NewTerminal(strings.NewReader(input), io.Discard), "Enter: ")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", input, err)
		}
		if got != want {
			t.Errorf("Confirm(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestConfirmEOF(t *testing.T) {
	ok, err := Confirm(NewTerminal(strings.NewReader(""), io.Discard), "Enter: ")
	if ok || !errors.Is(err, io.EOF) {
		t.Errorf("Confirm() = %v, %v; want false, io.EOF", ok, err)
	}
}
