package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/doc-sorter/internal/platform"
)

const (
	AppIcon = "doc-sorter.png"
)

// LoadAppIcon loads the window icon shipped next to the executable
func LoadAppIcon() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(filepath.Join(platform.BaseDir(), AppIcon))
}
