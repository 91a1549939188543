package clipboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/atotto/clipboard"
)

func TestSystemPrimaryPath(t *testing.T) {
	var got string
	var term bytes.Buffer
	s := &System{
		Terminal:  &term,
		supported: func() bool { return true },
		write:     func(text string) error { got = text; return nil },
	}

	if err := s.Write("hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got != "hello" {
		t.Fatalf("primary received %q", got)
	}
	if term.Len() != 0 {
		t.Fatal("fallback used although primary is supported")
	}
}

func TestSystemPrimaryRejectionIsHardFailure(t *testing.T) {
	var term bytes.Buffer
	s := &System{
		Terminal:  &term,
		supported: func() bool { return true },
		write:     func(string) error { return errors.New("exit status 1") },
	}

	if err := s.Write("x"); !errors.Is(err, ErrDenied) {
		t.Fatalf("expected ErrDenied, got %v", err)
	}
	if term.Len() != 0 {
		t.Fatal("rejected primary write must not fall back")
	}
}

func TestSystemFallback(t *testing.T) {
	var term bytes.Buffer
	s := &System{
		Terminal:  &term,
		supported: func() bool { return false },
		write:     func(string) error { t.Fatal("primary called"); return nil },
	}

	if err := s.Write("hi"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := "\x1b]52;c;aGk=\a"; term.String() != want {
		t.Fatalf("fallback wrote %q, want %q", term.String(), want)
	}
}

func TestSystemNoClipboardAtAll(t *testing.T) {
	s := &System{supported: func() bool { return false }}
	if err := s.Write("x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestFunc(t *testing.T) {
	var got string
	var w Writer = Func(func(text string) error { got = text; return nil })
	w.Write("abc")
	if got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestSystemZeroValue(t *testing.T) {
	var s System
	err := s.Write("zero")
	if clipboard.Unsupported {
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable without tools or terminal, got %v", err)
		}
		return
	}
	if err != nil && !errors.Is(err, ErrDenied) {
		t.Fatalf("unexpected error %v", err)
	}
}
