// Package clipboard copies composed text to the host clipboard.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

var (
	// ErrDenied means the platform rejected the write. The copy failed.
	ErrDenied = errors.New("clipboard write denied")

	// ErrUnavailable means there is neither a system clipboard nor a fallback.
	ErrUnavailable = errors.New("no clipboard available")
)

// Writer puts text on a clipboard. Write returns only once the write has been
// confirmed or refused.
type Writer interface {
	Write(text string) error
}

// Func adapts a function to Writer.
type Func func(text string) error

func (f Func) Write(text string) error { return f(text) }

// System writes through the OS clipboard tools (pbcopy, xclip, xsel,
// wl-copy, the Windows API). When none exist it falls back to an OSC 52
// escape sequence on Terminal, which most terminal emulators turn into a
// clipboard write. The zero value uses the OS clipboard with no fallback.
type System struct {
	// Terminal receives the OSC 52 fallback. Nil disables the fallback.
	Terminal io.Writer

	supported func() bool
	write     func(string) error
}

// NewSystem returns a System writer with the given fallback terminal.
func NewSystem(terminal io.Writer) *System {
	return &System{
		Terminal:  terminal,
		supported: func() bool { return !clipboard.Unsupported },
		write:     clipboard.WriteAll,
	}
}

func (s *System) Write(text string) error {
	supported, write := s.supported, s.write
	if supported == nil {
		supported = func() bool { return !clipboard.Unsupported }
	}
	if write == nil {
		write = clipboard.WriteAll
	}

	if supported() {
		if err := write(text); err != nil {
			return fmt.Errorf("%w: %v", ErrDenied, err)
		}
		return nil
	}
	if s.Terminal == nil {
		return ErrUnavailable
	}
	if err := WriteOSC52(s.Terminal, text); err != nil {
		return fmt.Errorf("%w: %v", ErrDenied, err)
	}
	return nil
}

// WriteOSC52 emits a "set clipboard" terminal sequence for text.
func WriteOSC52(w io.Writer, text string) error {
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	_, err := io.WriteString(w, seq)
	return err
}
