package model

import (
	"path/filepath"
	"strings"
)

// FileKind classifies a queued file by how it can be previewed and converted
type FileKind int

const (
	KindUnknown FileKind = iota
	KindPDF
	KindImage
)

// String returns a short label for the kind
func (k FileKind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Supported extensions, lower-case with leading dot
const (
	ExtPDF  = ".pdf"
	ExtJPG  = ".jpg"
	ExtJPEG = ".jpeg"
	ExtPNG  = ".png"
)

// KindOf returns the kind of a file from its extension, case-insensitively
func KindOf(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtPDF:
		return KindPDF
	case ExtJPG, ExtJPEG, ExtPNG:
		return KindImage
	default:
		return KindUnknown
	}
}

// FileEntry is one file waiting in the queue
type FileEntry struct {
	Path string
	Kind FileKind
}

// NewFileEntry creates an entry with its kind derived from the extension
func NewFileEntry(path string) FileEntry {
	return FileEntry{Path: path, Kind: KindOf(path)}
}

// Name returns the file name without directory
func (fe FileEntry) Name() string {
	return filepath.Base(fe.Path)
}

// Ext returns the original extension with its case preserved
func (fe FileEntry) Ext() string {
	return filepath.Ext(fe.Path)
}

// IsImage reports whether the entry can be converted to PDF
func (fe FileEntry) IsImage() bool {
	return fe.Kind == KindImage
}

// GetDisplayTitle returns the file name without extension for window titles
func (fe FileEntry) GetDisplayTitle() string {
	name := fe.Name()
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// Category is a named destination directory
type Category struct {
	Name string
	Path string
}

// PendingEdit holds what the user has entered for the current file
type PendingEdit struct {
	Name         string
	Category     string
	ConvertToPDF bool
}
