package composer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers yes/no questions before destructive actions.
type Confirmer interface {
	Confirm(question string) bool
}

// Always answers every question the same way.
type Always bool

func (a Always) Confirm(string) bool { return bool(a) }

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(question string) bool

func (f ConfirmFunc) Confirm(question string) bool { return f(question) }

// Prompt asks on out and reads the answer from in. Only "y" or "yes"
// (any case) confirms; anything else, including EOF, declines.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Confirm(question string) bool {
	fmt.Fprintf(p.Out, "%s [y/N] ", question)
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
