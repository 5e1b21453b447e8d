package preview

// Package preview turns a queued file into a bounded raster for display.
// Images are decoded directly; PDFs are rasterized one page at a time through
// a Rasterizer, by default go-pdfium running on the WebAssembly runtime.
