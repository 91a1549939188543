package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"promptpad/viewmode"
)

// WriteList prints items as a numbered list. Numbers shown to the user are
// 1-based; Item.Index stays 0-based.
func WriteList(w io.Writer, items []Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No saved prompts.")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%3d  %s\n", it.Index+1, strings.ReplaceAll(it.Text, "\n", `\n`))
	}
}

const consoleHelp = `commands:
  list             show saved prompts
  base <text>      set the base field
  addon <text>     set the addon field
  show             print both fields
  copy             copy base + addon and save the base
  select <n>       load saved prompt n into the base field
  delete <n>       delete saved prompt n
  quit             leave`

// Console is a line-oriented Surface on a terminal.
type Console struct {
	in  io.Reader
	out io.Writer

	mu       sync.Mutex
	base     string
	addon    string
	items    []Item
	onSelect func(int)
	onDelete func(int)
	onSubmit func(string, string)
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

func (c *Console) RenderList(items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	WriteList(c.out, items)
}

func (c *Console) SetBase(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = text
	fmt.Fprintf(c.out, "base: %s\n", text)
}

func (c *Console) ShowResult(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "copied:\n%s\n", text)
}

func (c *Console) ShowMode(m viewmode.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "view: %s\n", m)
}

func (c *Console) Notify(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s: %s\n", n.Level, n.Message)
}

func (c *Console) OnSelect(fn func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSelect = fn
}

func (c *Console) OnDelete(fn func(int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDelete = fn
}

func (c *Console) OnSubmit(fn func(string, string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSubmit = fn
}

// Fields returns the current base and addon text.
func (c *Console) Fields() (base, addon string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base, c.addon
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	sc := bufio.NewScanner(c.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(c.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		if done := c.dispatch(strings.TrimSpace(sc.Text())); done {
			return nil
		}
	}
}

// dispatch handles one command line and reports whether to stop.
func (c *Console) dispatch(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
	case "list":
		c.mu.Lock()
		WriteList(c.out, c.items)
		c.mu.Unlock()
	case "base":
		c.mu.Lock()
		c.base = arg
		c.mu.Unlock()
	case "addon":
		c.mu.Lock()
		c.addon = arg
		c.mu.Unlock()
	case "show":
		base, addon := c.Fields()
		fmt.Fprintf(c.out, "base:  %s\naddon: %s\n", base, addon)
	case "copy":
		c.mu.Lock()
		fn, base, addon := c.onSubmit, c.base, c.addon
		c.mu.Unlock()
		if fn != nil {
			fn(base, addon)
		}
	case "select", "delete":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			fmt.Fprintf(c.out, "error: %s needs a prompt number\n", cmd)
			return false
		}
		c.mu.Lock()
		fn := c.onSelect
		if cmd == "delete" {
			fn = c.onDelete
		}
		c.mu.Unlock()
		if fn != nil {
			fn(n - 1)
		}
	default:
		fmt.Fprintf(c.out, "unknown command %q (try help)\n", cmd)
	}
	return false
}
