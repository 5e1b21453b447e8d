package convert

// Converter defines the interface for the image to PDF conversion service.
type Converter interface {
	ImageToPDF(imagePath, pdfPath string) error
}
