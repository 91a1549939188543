// Package composer wires the prompt store, view-mode store, clipboard and
// surfaces together. It owns the copy-then-save flow and every mutation that
// needs a re-render.
package composer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"promptpad/clipboard"
	"promptpad/compose"
	"promptpad/prompt"
	"promptpad/ui"
	"promptpad/viewmode"
)

var (
	ErrClipboardDenied = errors.New("copy to clipboard failed")
	ErrNoSuchPrompt    = errors.New("no saved prompt at that index")
)

// User-facing texts.
const (
	QuestionClear     = "Delete all saved prompts?"
	QuestionOverwrite = "Overwrite existing prompts?"
	MessageNoExport   = "No prompts to export."
	MessageBadImport  = "Invalid file."
	MessageCopyFailed = "Copy failed."
	MessageImported   = "Imported %d prompts."
)

// CopyResult is what a successful copy produced. Saved is false when the
// base was empty, already saved, or could not be persisted.
type CopyResult struct {
	Text  string `json:"text"`
	Saved bool   `json:"saved"`
}

// Options wires a Controller. Prompts, Views and Clipboard are required.
type Options struct {
	Prompts   *prompt.Store
	Views     *viewmode.Store
	Clipboard clipboard.Writer

	// Translation supplies the template defaults; it is read on every call so
	// reloaded config takes effect. Nil means compose.DefaultTranslationOptions.
	Translation func() compose.TranslationOptions
	// ExportTimestamp reports whether exports carry exportedAt. Nil means yes.
	ExportTimestamp func() bool

	Logger *slog.Logger
	Now    func() time.Time
}

type Controller struct {
	prompts     *prompt.Store
	views       *viewmode.Store
	clip        clipboard.Writer
	renderer    ui.Renderer
	translation func() compose.TranslationOptions
	exportStamp func() bool
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	surfaces map[int]ui.Surface
	nextID   int
}

func New(opts Options) *Controller {
	c := &Controller{
		prompts:     opts.Prompts,
		views:       opts.Views,
		clip:        opts.Clipboard,
		translation: opts.Translation,
		exportStamp: opts.ExportTimestamp,
		logger:      opts.Logger,
		now:         opts.Now,
		surfaces:    make(map[int]ui.Surface),
	}
	if c.translation == nil {
		c.translation = compose.DefaultTranslationOptions
	}
	if c.exportStamp == nil {
		c.exportStamp = func() bool { return true }
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Prompts returns the saved prompts.
func (c *Controller) Prompts() []string {
	return c.prompts.Load()
}

// Add saves text directly, without a copy.
func (c *Controller) Add(text string) (bool, error) {
	added, err := c.prompts.Add(text)
	if err != nil {
		return false, err
	}
	if added {
		c.renderAll()
	}
	return added, nil
}

// Copy formats base and addon, writes the result to the clipboard and, only
// once the write succeeded, saves the trimmed base.
func (c *Controller) Copy(base, addon string) (CopyResult, error) {
	text, err := compose.Format(base, addon)
	if err != nil {
		return CopyResult{}, err
	}

	if err := c.clip.Write(text); err != nil {
		c.logger.Warn("clipboard write failed", "error", err)
		return CopyResult{}, fmt.Errorf("%w: %v", ErrClipboardDenied, err)
	}

	res := CopyResult{Text: text}
	if trimmed := strings.TrimSpace(base); trimmed != "" {
		added, err := c.prompts.Add(trimmed)
		if err != nil {
			c.logger.Warn("copied but could not save base prompt", "error", err)
		}
		res.Saved = added
	}

	c.renderAll()
	return res, nil
}

// Select returns the saved prompt at index. Nothing is modified.
func (c *Controller) Select(index int) (string, error) {
	prompts := c.prompts.Load()
	if index < 0 || index >= len(prompts) {
		return "", ErrNoSuchPrompt
	}
	return prompts[index], nil
}

// Delete removes the saved prompt at index.
func (c *Controller) Delete(index int) error {
	removed, err := c.prompts.RemoveAt(index)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNoSuchPrompt
	}
	c.renderAll()
	return nil
}

// ClearAll drops every saved prompt if confirm agrees. It reports whether
// anything was done.
func (c *Controller) ClearAll(confirm Confirmer) (bool, error) {
	if !confirm.Confirm(QuestionClear) {
		return false, nil
	}
	if err := c.prompts.Clear(); err != nil {
		return false, err
	}
	c.renderAll()
	return true, nil
}

// Import replaces the collection with the prompts in raw. A malformed file
// is rejected before the user is asked anything.
func (c *Controller) Import(raw []byte, confirm Confirmer) (bool, error) {
	snap, err := prompt.ParseImport(raw)
	if err != nil {
		return false, err
	}
	if !confirm.Confirm(QuestionOverwrite) {
		return false, nil
	}
	if err := c.prompts.ReplaceAll(snap.Prompts); err != nil {
		return false, err
	}
	c.logger.Info("imported prompts", "count", len(snap.Prompts))
	c.renderAll()
	notice := ui.Notice{Level: ui.LevelInfo, Message: fmt.Sprintf(MessageImported, len(snap.Prompts))}
	for _, s := range c.bound() {
		s.Notify(notice)
	}
	return true, nil
}

// Export returns the backup file contents.
func (c *Controller) Export() ([]byte, error) {
	snap, err := c.prompts.ExportSnapshot()
	if err != nil {
		return nil, err
	}
	var at time.Time
	if c.exportStamp() {
		at = c.now()
	}
	return prompt.EncodeExport(snap, at)
}

func (c *Controller) ViewMode() viewmode.Mode {
	return c.views.Load()
}

// SetViewMode persists m and shows it everywhere.
func (c *Controller) SetViewMode(m viewmode.Mode) error {
	if err := c.views.Set(m); err != nil {
		return err
	}
	for _, s := range c.bound() {
		s.ShowMode(m)
	}
	return nil
}

// ToggleViewMode flips and persists the layout, then shows it everywhere.
func (c *Controller) ToggleViewMode() (viewmode.Mode, error) {
	m, err := c.views.Toggle()
	if err != nil {
		return "", err
	}
	for _, s := range c.bound() {
		s.ShowMode(m)
	}
	return m, nil
}

// TranslationDefaults returns the configured template settings.
func (c *Controller) TranslationDefaults() compose.TranslationOptions {
	return c.translation()
}

// TranslationPrompt builds the translation template from override, or from
// the configured defaults when override is nil.
func (c *Controller) TranslationPrompt(override *compose.TranslationOptions) string {
	opts := c.translation()
	if override != nil {
		opts = *override
	}
	return compose.BuildTranslation(opts)
}

// Bind attaches s: its hooks are registered, and it gets the current list
// and mode. The returned func detaches it.
func (c *Controller) Bind(s ui.Surface) (unbind func()) {
	s.OnSelect(func(i int) {
		text, err := c.Select(i)
		if err != nil {
			c.logger.Debug("select ignored", "index", i)
			return
		}
		s.SetBase(text)
	})
	s.OnDelete(func(i int) {
		if err := c.Delete(i); err != nil && !errors.Is(err, ErrNoSuchPrompt) {
			s.Notify(ui.Notice{Level: ui.LevelError, Message: err.Error()})
		}
	})
	s.OnSubmit(func(base, addon string) {
		res, err := c.Copy(base, addon)
		switch {
		case errors.Is(err, compose.ErrNothingToCopy):
		case err != nil:
			s.Notify(ui.Notice{Level: ui.LevelError, Message: MessageCopyFailed})
		default:
			s.ShowResult(res.Text)
		}
	})

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.surfaces[id] = s
	c.mu.Unlock()

	c.renderer.Render(s, c.prompts.Load())
	s.ShowMode(c.views.Load())

	return func() {
		c.mu.Lock()
		delete(c.surfaces, id)
		c.mu.Unlock()
	}
}

func (c *Controller) bound() []ui.Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ui.Surface, 0, len(c.surfaces))
	for _, s := range c.surfaces {
		out = append(out, s)
	}
	return out
}

// renderAll rebuilds the list on every bound surface from the store.
func (c *Controller) renderAll() {
	surfaces := c.bound()
	if len(surfaces) == 0 {
		return
	}
	prompts := c.prompts.Load()
	for _, s := range surfaces {
		c.renderer.Render(s, prompts)
	}
}
