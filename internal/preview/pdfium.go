package preview

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

// PDFium settings
const (
	// IntrinsicDPI renders one PDF point as one pixel
	IntrinsicDPI        = 72
	PDFiumInstanceLimit = 1
	PDFiumGetTimeout    = 30 * time.Second
)

// PDFium rasterizes PDFs with go-pdfium on the WebAssembly runtime. The
// runtime is started on first use and kept until Close.
type PDFium struct {
	pool     pdfium.Pool
	instance pdfium.Pdfium
}

// NewPDFium creates a rasterizer without starting the runtime yet
func NewPDFium() *PDFium {
	return &PDFium{}
}

func (p *PDFium) init() error {
	if p.instance != nil {
		return nil
	}

	started := time.Now()
	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  PDFiumInstanceLimit,
		MaxIdle:  PDFiumInstanceLimit,
		MaxTotal: PDFiumInstanceLimit,
	})
	if err != nil {
		return fmt.Errorf("starting pdfium: %w", err)
	}

	instance, err := pool.GetInstance(PDFiumGetTimeout)
	if err != nil {
		pool.Close()
		return fmt.Errorf("acquiring pdfium instance: %w", err)
	}

	p.pool = pool
	p.instance = instance
	log.Printf("pdfium runtime ready in %v", time.Since(started))
	return nil
}

// FirstPage renders page one of the document at IntrinsicDPI. The document
// handle is closed before returning, on success and on error.
func (p *PDFium) FirstPage(path string) (img image.Image, err error) {
	if err := p.init(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := p.instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer func() {
		if _, closeErr := p.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document}); closeErr != nil && err == nil {
			err = fmt.Errorf("closing PDF: %w", closeErr)
		}
	}()

	count, err := p.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc.Document})
	if err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	if count.PageCount < 1 {
		return nil, errors.New("document has no pages")
	}

	render, err := p.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: IntrinsicDPI,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: doc.Document,
				Index:    0,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("rendering first page: %w", err)
	}
	// The bitmap lives in pdfium memory and is freed by Cleanup, so copy it out first
	defer render.Cleanup()

	return Flatten(render.Result.Image), nil
}

// Close shuts down the runtime
func (p *PDFium) Close() error {
	if p.instance == nil {
		return nil
	}
	instanceErr := p.instance.Close()
	poolErr := p.pool.Close()
	p.instance = nil
	p.pool = nil
	return errors.Join(instanceErr, poolErr)
}
