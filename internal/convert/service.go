package convert

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/ytget/doc-sorter/internal/model"
	"github.com/ytget/doc-sorter/internal/platform"
	"github.com/ytget/doc-sorter/internal/preview"
)

// PDF layout constants
const (
	// ImageDPI maps image pixels to page size
	ImageDPI       = 100.0
	PointsPerInch  = 72.0
	PageUnit       = "pt"
	PageOrientPort = "P"
	ImageName      = "page"

	ImageTypeJPG = "JPG"
	ImageTypePNG = "PNG"
)

// Service converts images to PDF files
type Service struct {
	dpi float64
}

// NewService creates a new conversion service
func NewService() Converter {
	return &Service{dpi: ImageDPI}
}

// ImageToPDF writes imagePath as a one-page PDF at pdfPath. The page is the
// size of the image at ImageDPI. Any partially written pdfPath is removed
// when conversion fails.
func (s *Service) ImageToPDF(imagePath, pdfPath string) error {
	if err := s.writePDF(imagePath, pdfPath); err != nil {
		_ = platform.RemoveIfExists(pdfPath)
		return fmt.Errorf("%w: %s: %w", model.ErrConversion, filepath.Base(imagePath), err)
	}
	return nil
}

func (s *Service) writePDF(imagePath, pdfPath string) error {
	f, err := os.Open(imagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("reading image header: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("image has no pixels")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	imageType, data, err := s.pageImage(f, format)
	if err != nil {
		return err
	}

	width, height := s.pageSize(cfg.Width, cfg.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: PageUnit})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat(PageOrientPort, gofpdf.SizeType{Wd: width, Ht: height})

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: false}
	pdf.RegisterImageOptionsReader(ImageName, opts, data)
	pdf.ImageOptions(ImageName, 0, 0, width, height, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(pdfPath)
}

// pageImage returns the bytes gofpdf embeds for the image
func (s *Service) pageImage(f *os.File, format string) (string, *bytes.Buffer, error) {
	switch strings.ToLower(format) {
	case "jpeg":
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(f); err != nil {
			return "", nil, err
		}
		return ImageTypeJPG, &buf, nil
	case "png":
		img, err := png.Decode(f)
		if err != nil {
			return "", nil, fmt.Errorf("decoding png: %w", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, preview.Flatten(img)); err != nil {
			return "", nil, fmt.Errorf("encoding png: %w", err)
		}
		return ImageTypePNG, &buf, nil
	default:
		return "", nil, fmt.Errorf("unsupported image format %q", format)
	}
}

// pageSize converts pixels to points at the service DPI
func (s *Service) pageSize(widthPx, heightPx int) (float64, float64) {
	return float64(widthPx) * PointsPerInch / s.dpi, float64(heightPx) * PointsPerInch / s.dpi
}
