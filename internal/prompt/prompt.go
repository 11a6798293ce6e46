// Package prompt reads interactive answers from the terminal. It is the only
// place the tool reads user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks a question and returns the answer without its line ending.
// io.EOF is returned once input is exhausted.
type Prompter interface {
	Ask(label string) (string, error)
}

// Terminal is a line-oriented Prompter.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal reads answers from in and writes labels to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Ask prints label and reads one line. A final line without a newline is
// still returned; only an empty read at end of input yields io.EOF.
func (t *Terminal) Ask(label string) (string, error) {
	if _, err := fmt.Fprint(t.out, label); err != nil {
		return "", err
	}
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks label and reports whether the answer is exactly "Y" or "y".
func Confirm(p Prompter, label string) (bool, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return false, err
	}
	return answer == "Y" || answer == "y", nil
}
