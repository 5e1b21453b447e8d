package triage

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ytget/doc-sorter/internal/category"
	"github.com/ytget/doc-sorter/internal/model"
	"github.com/ytget/doc-sorter/internal/platform"
	"github.com/ytget/doc-sorter/internal/preview"
	"github.com/ytget/doc-sorter/internal/queue"
)

// Validation failures reported by Save
var (
	ErrNameRequired     = fmt.Errorf("%w: name required", model.ErrValidation)
	ErrInvalidName      = fmt.Errorf("%w: invalid name", model.ErrValidation)
	ErrCategoryRequired = fmt.Errorf("%w: category required", model.ErrValidation)
	ErrNoCurrentFile    = fmt.Errorf("%w: no file to save", model.ErrValidation)
)

// Renderer produces preview rasters
type Renderer interface {
	Render(path string, maxWidth, maxHeight int) (image.Image, error)
}

// Converter writes an image file as a PDF
type Converter interface {
	ImageToPDF(imagePath, pdfPath string) error
}

// CategoryStore is the set of destinations files can be filed into
type CategoryStore interface {
	Categories() []model.Category
	Lookup(name string) (model.Category, bool)
	Default() model.Category
	Add(name, dir string) ([]model.Category, error)
}

// Controller owns one triage session at a time
type Controller struct {
	store     CategoryStore
	renderer  Renderer
	converter Converter

	queue     *queue.Queue
	state     model.State
	pending   model.PendingEdit
	sessionID string
	signalled bool

	maxWidth  int
	maxHeight int
}

// NewController creates an idle controller
func NewController(store CategoryStore, renderer Renderer, converter Converter) *Controller {
	c := &Controller{
		store:     store,
		renderer:  renderer,
		converter: converter,
		state:     model.StateIdle,
		maxWidth:  preview.DefaultMaxWidth,
		maxHeight: preview.DefaultMaxHeight,
	}
	c.resetPending()
	return c
}

// SetPreviewBounds changes the box previews are scaled into. Non-positive
// values keep the current bound.
func (c *Controller) SetPreviewBounds(maxWidth, maxHeight int) {
	if maxWidth > 0 {
		c.maxWidth = maxWidth
	}
	if maxHeight > 0 {
		c.maxHeight = maxHeight
	}
}

// PreviewBounds returns the box previews are scaled into
func (c *Controller) PreviewBounds() (int, int) {
	return c.maxWidth, c.maxHeight
}

// SelectFolder scans folder and starts a new session on its first file
func (c *Controller) SelectFolder(folder string) Outcome {
	q, err := queue.Scan(folder)
	if err != nil {
		log.Printf("Triage: scan of %s failed: %v", folder, err)
		return c.outcome(OutcomeFailed, err)
	}

	c.queue = q
	c.sessionID = uuid.NewString()
	c.signalled = false
	c.resetPending()
	log.Printf("Triage: session %s started on %s with %d files", c.sessionID, folder, q.Len())

	return c.load(OutcomeReady)
}

// Save validates the pending edit and files the current entry. Questions
// for the user come back as OutcomeNeedsConfirmation; call Save again with
// the matching Confirmations field set once the user agrees.
func (c *Controller) Save(confirm Confirmations) Outcome {
	if !c.state.AcceptsSave() {
		return c.outcome(OutcomeInvalid, ErrNoCurrentFile)
	}
	entry, ok := c.queue.Current()
	if !ok {
		return c.outcome(OutcomeInvalid, ErrNoCurrentFile)
	}

	c.state = model.StateSaving
	out := c.save(entry, confirm)
	if c.state == model.StateSaving {
		c.state = model.StateReady
	}
	return out
}

func (c *Controller) save(entry model.FileEntry, confirm Confirmations) Outcome {
	name, err := cleanName(c.pending.Name)
	if err != nil {
		return c.outcome(OutcomeInvalid, err)
	}

	cat, ok := c.store.Lookup(c.pending.Category)
	if !ok || cat.Path == "" {
		return c.outcome(OutcomeInvalid, ErrCategoryRequired)
	}

	if category.IsDefaultName(cat.Name) && !confirm.Uncategorized {
		return c.confirm(PromptUncategorized)
	}

	if err := platform.CreateDirectoryIfNotExists(cat.Path); err != nil {
		log.Printf("Triage: cannot create %s: %v", cat.Path, err)
		return c.outcome(OutcomeFailed, fmt.Errorf("%w: creating %s: %w", model.ErrIO, cat.Path, err))
	}

	convert := entry.IsImage() && c.pending.ConvertToPDF
	ext := entry.Ext()
	if convert {
		ext = model.ExtPDF
	}

	dest := filepath.Join(cat.Path, name+ext)
	if platform.FileExists(dest) {
		if !confirm.Suffix {
			return c.confirm(PromptCollision)
		}
		dest = nextFreePath(cat.Path, name, ext)
	}

	if err := c.commit(entry, dest, convert); err != nil {
		if rmErr := platform.RemoveIfExists(dest); rmErr != nil {
			log.Printf("Triage: cannot remove partial %s: %v", dest, rmErr)
		}
		log.Printf("Triage: saving %s failed: %v", entry.Name(), err)
		return c.outcome(OutcomeFailed, err)
	}

	log.Printf("Triage: %s -> %s (%d/%d)", entry.Name(), dest, c.queue.Position()+1, c.queue.Len())
	c.resetPending()
	c.queue.Advance()

	out := c.load(OutcomeSaved)
	out.Destination = dest
	return out
}

func (c *Controller) commit(entry model.FileEntry, dest string, convert bool) error {
	if !convert {
		if err := platform.MoveFile(entry.Path, dest); err != nil {
			return fmt.Errorf("%w: %w", model.ErrIO, err)
		}
		return nil
	}

	if err := c.converter.ImageToPDF(entry.Path, dest); err != nil {
		return err
	}
	if err := os.Remove(entry.Path); err != nil {
		return fmt.Errorf("%w: removing converted source: %w", model.ErrIO, err)
	}
	return nil
}

// load renders the current entry, or finishes the session when none is left
func (c *Controller) load(kind OutcomeKind) Outcome {
	if c.queue.Done() {
		c.state = model.StateComplete
		out := c.outcome(OutcomeCompleted, nil)
		if !c.signalled {
			c.signalled = true
			out.Completed = true
			log.Printf("Triage: session %s complete", c.sessionID)
		}
		return out
	}

	entry, _ := c.queue.Current()
	c.state = model.StateReady
	out := c.outcome(kind, nil)

	img, err := c.renderer.Render(entry.Path, c.maxWidth, c.maxHeight)
	if err != nil {
		log.Printf("Triage: preview of %s failed: %v", entry.Name(), err)
		out.PreviewErr = err
	} else {
		out.Preview = img
	}
	return out
}

func (c *Controller) confirm(prompt Prompt) Outcome {
	out := c.outcome(OutcomeNeedsConfirmation, nil)
	out.Prompt = prompt
	return out
}

func (c *Controller) outcome(kind OutcomeKind, err error) Outcome {
	out := Outcome{Kind: kind, Err: err}
	if c.queue != nil {
		out.Entry, _ = c.queue.Current()
		out.Remaining = c.queue.Remaining()
	}
	return out
}

func (c *Controller) resetPending() {
	c.pending = model.PendingEdit{Category: c.store.Default().Name}
}

// SetName sets the proposed name for the current file
func (c *Controller) SetName(name string) {
	c.pending.Name = name
}

// SetCategory selects the destination category by name
func (c *Controller) SetCategory(name string) {
	c.pending.Category = name
}

// SetConvert sets whether an image is converted to PDF on save
func (c *Controller) SetConvert(convert bool) {
	c.pending.ConvertToPDF = convert
}

// Pending returns the edit that the next Save will apply
func (c *Controller) Pending() model.PendingEdit {
	return c.pending
}

// Current returns the file being triaged
func (c *Controller) Current() (model.FileEntry, bool) {
	if c.queue == nil {
		return model.FileEntry{}, false
	}
	return c.queue.Current()
}

// Remaining returns the number of files left, including the current one
func (c *Controller) Remaining() int {
	if c.queue == nil {
		return 0
	}
	return c.queue.Remaining()
}

// Folder returns the folder of the current session
func (c *Controller) Folder() string {
	if c.queue == nil {
		return ""
	}
	return c.queue.Folder()
}

// State returns the current workflow state
func (c *Controller) State() model.State {
	return c.state
}

// SessionID identifies the current folder session in logs
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Categories returns the configured destinations in insertion order
func (c *Controller) Categories() []model.Category {
	return c.store.Categories()
}

// AddCategory stores a new category and selects it
func (c *Controller) AddCategory(name, dir string) ([]model.Category, error) {
	categories, err := c.store.Add(name, dir)
	if err != nil {
		if !errors.Is(err, model.ErrValidation) {
			log.Printf("Triage: adding category %q failed: %v", name, err)
		}
		return nil, err
	}
	c.pending.Category = categories[len(categories)-1].Name
	return categories, nil
}
