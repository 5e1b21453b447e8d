package app

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/doc-sorter/internal/category"
	"github.com/ytget/doc-sorter/internal/convert"
	"github.com/ytget/doc-sorter/internal/model"
	"github.com/ytget/doc-sorter/internal/platform"
	"github.com/ytget/doc-sorter/internal/preview"
	"github.com/ytget/doc-sorter/internal/triage"
	"github.com/ytget/doc-sorter/internal/ui"
)

const (
	AppID   = "com.ytget.doc-sorter"
	AppName = "Doc Sorter"

	WindowWidth  = 1200
	WindowHeight = 900
)

// Run builds the window and blocks until it is closed
func Run(version string) {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewSorterTheme())
	if icon, err := ui.LoadAppIcon(); err == nil {
		myApp.SetIcon(icon)
	}

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	store, storeErr := loadCategories(filepath.Join(platform.BaseDir(), category.FileName))

	renderer := preview.NewRenderer(preview.NewPDFium())
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Printf("failed to release PDF renderer: %v", err)
		}
	}()

	ctrl := triage.NewController(store, renderer, convert.NewService())

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, ctrl)
	if storeErr != nil {
		root.ShowCategoryFileError(storeErr)
	}

	myWindow.ShowAndRun()
}

// loadCategories opens the category file. A corrupt file is left untouched
// and an in-memory default store is returned along with the error.
func loadCategories(path string) (*category.Store, error) {
	store, err := category.Load(path)
	if err == nil {
		return store, nil
	}

	log.Printf("failed to load categories from %s: %v", path, err)
	if !errors.Is(err, model.ErrConfig) {
		err = fmt.Errorf("%w: %w", model.ErrConfig, err)
	}
	return category.Fallback(path), err
}
