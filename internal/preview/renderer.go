package preview

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/ytget/doc-sorter/internal/model"
)

// Default preview bounds in pixels
const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 1000
)

// ErrUnsupported is returned for files that are neither PDF nor image
var ErrUnsupported = errors.New("unsupported file type")

// Rasterizer renders the first page of a PDF document
type Rasterizer interface {
	FirstPage(path string) (image.Image, error)
	Close() error
}

// RenderError reports a file that could not be previewed
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot preview %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() []error {
	return []error{model.ErrRender, e.Err}
}

// Renderer produces preview rasters for queued files
type Renderer struct {
	pdf Rasterizer
}

// NewRenderer creates a renderer that hands PDFs to pdf
func NewRenderer(pdf Rasterizer) *Renderer {
	return &Renderer{pdf: pdf}
}

// Render decodes or rasterizes path and scales the result down to fit within
// maxWidth x maxHeight, keeping the aspect ratio. Images are never enlarged.
func (r *Renderer) Render(path string, maxWidth, maxHeight int) (image.Image, error) {
	var (
		img image.Image
		err error
	)

	switch model.KindOf(path) {
	case model.KindImage:
		img, err = decodeImage(path)
	case model.KindPDF:
		if r.pdf == nil {
			err = errors.New("no PDF rasterizer configured")
			break
		}
		img, err = r.pdf.FirstPage(path)
	default:
		err = ErrUnsupported
	}
	if err != nil {
		return nil, &RenderError{Path: path, Err: err}
	}

	return Fit(img, maxWidth, maxHeight), nil
}

// Close releases the PDF rasterizer
func (r *Renderer) Close() error {
	if r.pdf == nil {
		return nil
	}
	return r.pdf.Close()
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}
