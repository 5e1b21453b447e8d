package triage

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/doc-sorter/internal/category"
	"github.com/ytget/doc-sorter/internal/convert"
	"github.com/ytget/doc-sorter/internal/model"
)

type fakeRenderer struct {
	calls []string
	err   error
}

func (f *fakeRenderer) Render(path string, maxWidth, maxHeight int) (image.Image, error) {
	f.calls = append(f.calls, filepath.Base(path))
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

// partialConverter leaves a truncated output behind and fails
type partialConverter struct{}

func (partialConverter) ImageToPDF(imagePath, pdfPath string) error {
	_ = os.WriteFile(pdfPath, []byte("%PDF-1.3\n"), 0644)
	return model.ErrConversion
}

// sourceTakingConverter writes the PDF but the source is gone before it can be removed
type sourceTakingConverter struct{}

func (sourceTakingConverter) ImageToPDF(imagePath, pdfPath string) error {
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.3\n"), 0644); err != nil {
		return err
	}
	return os.Remove(imagePath)
}

type fixture struct {
	src      string
	dst      string
	store    *category.Store
	renderer *fakeRenderer
	ctrl     *Controller
}

func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()

	root := t.TempDir()
	f := &fixture{
		src:      filepath.Join(root, "inbox"),
		dst:      filepath.Join(root, "dst"),
		renderer: &fakeRenderer{},
	}
	require.NoError(t, os.MkdirAll(f.src, 0755))

	for _, name := range files {
		if model.KindOf(name) == model.KindImage {
			writePNG(t, filepath.Join(f.src, name))
		} else {
			require.NoError(t, os.WriteFile(filepath.Join(f.src, name), []byte("content of "+name), 0644))
		}
	}

	store, err := category.Load(filepath.Join(root, category.FileName))
	require.NoError(t, err)
	_, err = store.Add("Pets", filepath.Join(f.dst, "pets"))
	require.NoError(t, err)
	f.store = store

	f.ctrl = NewController(store, f.renderer, convert.NewService())
	return f
}

func writePNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, png.Encode(out, img))
}

func (f *fixture) pets(name string) string {
	return filepath.Join(f.dst, "pets", name)
}

func TestNewController_Idle(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, model.StateIdle, f.ctrl.State())
	assert.Equal(t, category.DefaultName, f.ctrl.Pending().Category)
	assert.Zero(t, f.ctrl.Remaining())

	_, ok := f.ctrl.Current()
	assert.False(t, ok)

	out := f.ctrl.Save(Confirmations{})
	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.ErrorIs(t, out.Err, ErrNoCurrentFile)
}

func TestSelectFolder_LoadsFirstFile(t *testing.T) {
	f := newFixture(t, "b.pdf", "a.png", "notes.txt")

	out := f.ctrl.SelectFolder(f.src)

	assert.Equal(t, OutcomeReady, out.Kind)
	assert.Equal(t, "a.png", out.Entry.Name())
	assert.Equal(t, 2, out.Remaining)
	assert.NotNil(t, out.Preview)
	assert.Equal(t, model.StateReady, f.ctrl.State())
	assert.NotEmpty(t, f.ctrl.SessionID())
	assert.Equal(t, []string{"a.png"}, f.renderer.calls)
}

func TestSelectFolder_Unreadable(t *testing.T) {
	f := newFixture(t)

	out := f.ctrl.SelectFolder(filepath.Join(f.src, "missing"))

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.ErrorIs(t, out.Err, model.ErrIO)
	assert.Equal(t, model.StateIdle, f.ctrl.State())
}

func TestSelectFolder_EmptyCompletesOnce(t *testing.T) {
	f := newFixture(t)

	out := f.ctrl.SelectFolder(f.src)
	assert.Equal(t, OutcomeCompleted, out.Kind)
	assert.True(t, out.Completed)
	assert.Equal(t, model.StateComplete, f.ctrl.State())

	again := f.ctrl.Save(Confirmations{})
	assert.ErrorIs(t, again.Err, ErrNoCurrentFile)
	assert.False(t, again.Completed)
}

func TestSelectFolder_NewSessionID(t *testing.T) {
	f := newFixture(t, "a.pdf")

	f.ctrl.SelectFolder(f.src)
	first := f.ctrl.SessionID()
	f.ctrl.SelectFolder(f.src)

	assert.NotEqual(t, first, f.ctrl.SessionID())
}

func TestSave_ConvertImage(t *testing.T) {
	f := newFixture(t, "a.png", "b.pdf")
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")
	f.ctrl.SetConvert(true)
	out := f.ctrl.Save(Confirmations{})

	require.NoError(t, out.Err)
	assert.Equal(t, OutcomeSaved, out.Kind)
	assert.Equal(t, f.pets("cat.pdf"), out.Destination)
	assert.FileExists(t, f.pets("cat.pdf"))
	assert.NoFileExists(t, filepath.Join(f.src, "a.png"))
	assert.Equal(t, 1, f.ctrl.Remaining())

	current, ok := f.ctrl.Current()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", current.Name())
	assert.Equal(t, "b.pdf", out.Entry.Name())
	assert.Equal(t, []string{"a.png", "b.pdf"}, f.renderer.calls)
}

func TestSave_MoveImageKeepsFormat(t *testing.T) {
	f := newFixture(t, "a.png", "b.pdf")
	f.ctrl.SelectFolder(f.src)
	original, err := os.ReadFile(filepath.Join(f.src, "a.png"))
	require.NoError(t, err)

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")
	out := f.ctrl.Save(Confirmations{})

	require.NoError(t, out.Err)
	moved, err := os.ReadFile(f.pets("cat.png"))
	require.NoError(t, err)
	assert.Equal(t, original, moved)
	assert.NoFileExists(t, filepath.Join(f.src, "a.png"))
	assert.Equal(t, 1, f.ctrl.Remaining())
}

func TestSave_PreservesExtensionCase(t *testing.T) {
	f := newFixture(t, "SCAN.PDF")
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("invoice")
	f.ctrl.SetCategory("Pets")
	out := f.ctrl.Save(Confirmations{})

	require.NoError(t, out.Err)
	assert.FileExists(t, f.pets("invoice.PDF"))
}

func TestSave_ConvertIgnoredForPDF(t *testing.T) {
	f := newFixture(t, "a.pdf")
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("doc")
	f.ctrl.SetCategory("Pets")
	f.ctrl.SetConvert(true)
	out := f.ctrl.Save(Confirmations{})

	require.NoError(t, out.Err)
	data, err := os.ReadFile(f.pets("doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content of a.pdf", string(data))
}

func TestSave_CollisionSuffix(t *testing.T) {
	f := newFixture(t, "a.pdf")
	require.NoError(t, os.MkdirAll(f.pets(""), 0755))
	require.NoError(t, os.WriteFile(f.pets("cat.pdf"), []byte("old"), 0644))
	require.NoError(t, os.WriteFile(f.pets("cat_1.pdf"), []byte("old"), 0644))
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")

	out := f.ctrl.Save(Confirmations{})
	assert.Equal(t, OutcomeNeedsConfirmation, out.Kind)
	assert.Equal(t, PromptCollision, out.Prompt)
	assert.FileExists(t, filepath.Join(f.src, "a.pdf"))
	assert.Equal(t, model.StateReady, f.ctrl.State())

	out = f.ctrl.Save(Confirmations{Suffix: true})
	require.NoError(t, out.Err)
	assert.Equal(t, f.pets("cat_2.pdf"), out.Destination)
	assert.FileExists(t, f.pets("cat_2.pdf"))
}

func TestSave_UncategorizedNeedsConfirmation(t *testing.T) {
	f := newFixture(t, "a.pdf")
	f.ctrl.SelectFolder(f.src)
	f.ctrl.SetName("misc")

	out := f.ctrl.Save(Confirmations{})
	assert.Equal(t, OutcomeNeedsConfirmation, out.Kind)
	assert.Equal(t, PromptUncategorized, out.Prompt)
	assert.Equal(t, 1, f.ctrl.Remaining())

	out = f.ctrl.Save(Confirmations{Uncategorized: true})
	require.NoError(t, out.Err)
	assert.Equal(t, filepath.Join(f.store.Default().Path, "misc.pdf"), out.Destination)
	assert.True(t, out.Completed)
}

func TestSave_ValidationLeavesFilesAlone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category string
		wantErr  error
	}{
		{"empty name", "", "Pets", ErrNameRequired},
		{"blank name", "   ", "Pets", ErrNameRequired},
		{"path separator", "a/b", "Pets", ErrInvalidName},
		{"unknown category", "cat", "Nope", ErrCategoryRequired},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, "a.pdf")
			f.ctrl.SelectFolder(f.src)
			f.ctrl.SetName(test.input)
			f.ctrl.SetCategory(test.category)

			out := f.ctrl.Save(Confirmations{})

			assert.Equal(t, OutcomeInvalid, out.Kind)
			assert.ErrorIs(t, out.Err, test.wantErr)
			assert.ErrorIs(t, out.Err, model.ErrValidation)
			assert.FileExists(t, filepath.Join(f.src, "a.pdf"))
			assert.NoDirExists(t, f.dst)
			assert.Equal(t, 1, f.ctrl.Remaining())
			assert.Equal(t, model.StateReady, f.ctrl.State())
			assert.Equal(t, test.input, f.ctrl.Pending().Name)
		})
	}
}

func TestSave_NoDoubleExtension(t *testing.T) {
	f := newFixture(t, "a.pdf", "b.png")
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName(" report.pdf ")
	f.ctrl.SetCategory("Pets")
	require.NoError(t, f.ctrl.Save(Confirmations{}).Err)
	assert.FileExists(t, f.pets("report.pdf"))

	f.ctrl.SetName("photo.PNG")
	f.ctrl.SetCategory("Pets")
	f.ctrl.SetConvert(true)
	require.NoError(t, f.ctrl.Save(Confirmations{}).Err)
	assert.FileExists(t, f.pets("photo.pdf"))
	assert.NoFileExists(t, f.pets("photo.PNG.pdf"))
}

func TestSave_ConversionFailureRemovesPartial(t *testing.T) {
	f := newFixture(t, "a.png")
	f.ctrl = NewController(f.store, f.renderer, partialConverter{})
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")
	f.ctrl.SetConvert(true)
	out := f.ctrl.Save(Confirmations{})

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.ErrorIs(t, out.Err, model.ErrConversion)
	assert.NoFileExists(t, f.pets("cat.pdf"))
	assert.FileExists(t, filepath.Join(f.src, "a.png"))
	assert.Equal(t, 1, f.ctrl.Remaining())
	assert.Equal(t, model.StateReady, f.ctrl.State())

	// The same file can be retried
	assert.Equal(t, "cat", f.ctrl.Pending().Name)
}

func TestSave_MoveFailureKeepsCursor(t *testing.T) {
	f := newFixture(t, "a.pdf", "b.pdf")
	f.ctrl.SelectFolder(f.src)
	require.NoError(t, os.Remove(filepath.Join(f.src, "a.pdf")))

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")
	out := f.ctrl.Save(Confirmations{})

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.ErrorIs(t, out.Err, model.ErrIO)
	assert.NoFileExists(t, f.pets("cat.pdf"))
	assert.Equal(t, 2, f.ctrl.Remaining())
	assert.Equal(t, 2, out.Remaining)
	assert.Equal(t, "a.pdf", out.Entry.Name())
	assert.Equal(t, model.StateReady, f.ctrl.State())
	assert.Equal(t, "cat", f.ctrl.Pending().Name)
}

func TestSave_SourceRemovalFailureDeletesPDF(t *testing.T) {
	f := newFixture(t, "a.png", "b.pdf")
	f.ctrl = NewController(f.store, f.renderer, sourceTakingConverter{})
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")
	f.ctrl.SetConvert(true)
	out := f.ctrl.Save(Confirmations{})

	assert.Equal(t, OutcomeFailed, out.Kind)
	assert.ErrorIs(t, out.Err, model.ErrIO)
	assert.NoFileExists(t, f.pets("cat.pdf"))
	assert.Equal(t, 2, f.ctrl.Remaining())
	assert.Equal(t, model.StateReady, f.ctrl.State())

	current, ok := f.ctrl.Current()
	require.True(t, ok)
	assert.Equal(t, "a.png", current.Name())
}

func TestOutcomeHasEntry(t *testing.T) {
	f := newFixture(t, "a.pdf")

	assert.False(t, f.ctrl.Save(Confirmations{}).HasEntry())

	out := f.ctrl.SelectFolder(f.src)
	assert.True(t, out.HasEntry())

	f.ctrl.SetName("doc")
	f.ctrl.SetCategory("Pets")
	assert.False(t, f.ctrl.Save(Confirmations{}).HasEntry())
}

func TestSave_ResetsPendingEdit(t *testing.T) {
	f := newFixture(t, "a.png", "b.png")
	f.ctrl.SelectFolder(f.src)

	f.ctrl.SetName("cat")
	f.ctrl.SetCategory("Pets")
	f.ctrl.SetConvert(true)
	require.NoError(t, f.ctrl.Save(Confirmations{}).Err)

	assert.Equal(t, model.PendingEdit{Category: category.DefaultName}, f.ctrl.Pending())
}

func TestSave_CompletesExactlyOnce(t *testing.T) {
	f := newFixture(t, "a.pdf", "b.pdf")
	f.ctrl.SelectFolder(f.src)

	var completions int
	for _, name := range []string{"first", "second"} {
		f.ctrl.SetName(name)
		f.ctrl.SetCategory("Pets")
		out := f.ctrl.Save(Confirmations{})
		require.NoError(t, out.Err)
		if out.Completed {
			completions++
		}
	}

	out := f.ctrl.Save(Confirmations{})
	assert.False(t, out.Completed)
	assert.ErrorIs(t, out.Err, ErrNoCurrentFile)

	assert.Equal(t, 1, completions)
	assert.Equal(t, model.StateComplete, f.ctrl.State())
	assert.Zero(t, f.ctrl.Remaining())
	assert.FileExists(t, f.pets("first.pdf"))
	assert.FileExists(t, f.pets("second.pdf"))
}

func TestPreviewFailureDoesNotBlockSave(t *testing.T) {
	f := newFixture(t, "a.pdf")
	f.renderer.err = errors.New("broken page")

	out := f.ctrl.SelectFolder(f.src)
	assert.Equal(t, OutcomeReady, out.Kind)
	assert.Nil(t, out.Preview)
	assert.Error(t, out.PreviewErr)

	f.ctrl.SetName("kept")
	f.ctrl.SetCategory("Pets")
	require.NoError(t, f.ctrl.Save(Confirmations{}).Err)
	assert.FileExists(t, f.pets("kept.pdf"))
}

func TestAddCategory_SelectsNewCategory(t *testing.T) {
	f := newFixture(t)

	categories, err := f.ctrl.AddCategory("  Bills ", filepath.Join(f.dst, "bills"))
	require.NoError(t, err)

	assert.Equal(t, "Bills", categories[len(categories)-1].Name)
	assert.Equal(t, "Bills", f.ctrl.Pending().Category)
	assert.Len(t, f.ctrl.Categories(), 3)

	_, err = f.ctrl.AddCategory("Bills", f.dst)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "Bills", f.ctrl.Pending().Category)
}

func TestSetPreviewBounds(t *testing.T) {
	f := newFixture(t)

	f.ctrl.SetPreviewBounds(400, 0)
	w, h := f.ctrl.PreviewBounds()

	assert.Equal(t, 400, w)
	assert.Equal(t, 1000, h)
}
