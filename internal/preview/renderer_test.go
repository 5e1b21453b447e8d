package preview

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

	"github.com/ytget/doc-sorter/internal/model"
)

type fakeRasterizer struct {
	img    image.Image
	err    error
	calls  []string
	closed bool
}

func (f *fakeRasterizer) FirstPage(path string) (image.Image, error) {
	f.calls = append(f.calls, path)
	return f.img, f.err
}

func (f *fakeRasterizer) Close() error {
	f.closed = true
	return nil
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestRender_ImageDownscaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.PNG")
	writePNG(t, path, 400, 100)

	r := NewRenderer(nil)
	img, err := r.Render(path, 200, 200)
	require.NoError(t, err)

	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestRender_ImageNotUpscaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.png")
	writePNG(t, path, 40, 30)

	img, err := NewRenderer(nil).Render(path, DefaultMaxWidth, DefaultMaxHeight)
	require.NoError(t, err)

	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestRender_PDFUsesRasterizer(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 612, 792))
	fake := &fakeRasterizer{img: page}
	r := NewRenderer(fake)

	img, err := r.Render("/in/letter.PDF", 306, 1000)
	require.NoError(t, err)

	assert.Equal(t, []string{"/in/letter.PDF"}, fake.calls)
	assert.Equal(t, 306, img.Bounds().Dx())
	assert.Equal(t, 396, img.Bounds().Dy())

	require.NoError(t, r.Close())
	assert.True(t, fake.closed)
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a jpeg"), 0644))

	rasterErr := errors.New("bad xref")
	r := NewRenderer(&fakeRasterizer{err: rasterErr})

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.png"), want: os.ErrNotExist},
		{name: "corrupt image", path: corrupt},
		{name: "unsupported type", path: filepath.Join(dir, "notes.txt"), want: ErrUnsupported},
		{name: "rasterizer failure", path: filepath.Join(dir, "doc.pdf"), want: rasterErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := r.Render(tt.path, 100, 100)
			require.Error(t, err)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, model.ErrRender)

			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.path, renderErr.Path)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRender_PDFWithoutRasterizer(t *testing.T) {
	_, err := NewRenderer(nil).Render("/in/doc.pdf", 100, 100)
	assert.ErrorIs(t, err, model.ErrRender)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{name: "fits already", w: 100, h: 50, maxW: 800, maxH: 1000, wantW: 100, wantH: 50},
		{name: "too wide", w: 1600, h: 800, maxW: 800, maxH: 1000, wantW: 800, wantH: 400},
		{name: "too tall", w: 800, h: 2000, maxW: 800, maxH: 1000, wantW: 400, wantH: 1000},
		{name: "both too big", w: 2480, h: 3508, maxW: 800, maxH: 1000, wantW: 707, wantH: 1000},
		{name: "sliver keeps one pixel", w: 5000, h: 1, maxW: 100, maxH: 100, wantW: 100, wantH: 1},
		{name: "no bounds", w: 3000, h: 3000, maxW: 0, maxH: 0, wantW: 3000, wantH: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Fit(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestFlatten(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	src.Set(10, 10, color.NRGBA{R: 255, A: 255})
	src.Set(11, 10, color.NRGBA{}) // fully transparent

	out := Flatten(src)

	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out.RGBAAt(1, 0))
}
