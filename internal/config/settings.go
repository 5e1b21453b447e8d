package config

import (
	"os"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLastFolder       = "last_folder"
	KeyPreviewWidth     = "preview_max_width"
	KeyPreviewHeight    = "preview_max_height"
	KeyLanguage         = "app_language"
	KeyRevealOnComplete = "reveal_on_complete"
)

// Default values
const (
	DefaultPreviewWidth     = 800
	DefaultPreviewHeight    = 1000
	DefaultLanguage         = "system"
	DefaultRevealOnComplete = false
)

// Preview bound limits
const (
	MinPreviewSize = 200
	MaxPreviewSize = 4000
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLastFolder returns the folder last chosen for triage, or the home
// directory before the first choice
func (s *Settings) GetLastFolder() string {
	dir := s.app.Preferences().String(KeyLastFolder)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return home
	}
	return dir
}

// SetLastFolder remembers the folder chosen for triage
func (s *Settings) SetLastFolder(dir string) {
	s.app.Preferences().SetString(KeyLastFolder, dir)
}

// GetPreviewWidth returns the maximum preview width in pixels
func (s *Settings) GetPreviewWidth() int {
	value := s.app.Preferences().Int(KeyPreviewWidth)
	if value <= 0 {
		s.SetPreviewWidth(DefaultPreviewWidth)
		return DefaultPreviewWidth
	}
	return value
}

// SetPreviewWidth sets the maximum preview width
func (s *Settings) SetPreviewWidth(width int) {
	s.app.Preferences().SetInt(KeyPreviewWidth, clampPreview(width))
}

// GetPreviewHeight returns the maximum preview height in pixels
func (s *Settings) GetPreviewHeight() int {
	value := s.app.Preferences().Int(KeyPreviewHeight)
	if value <= 0 {
		s.SetPreviewHeight(DefaultPreviewHeight)
		return DefaultPreviewHeight
	}
	return value
}

// SetPreviewHeight sets the maximum preview height
func (s *Settings) SetPreviewHeight(height int) {
	s.app.Preferences().SetInt(KeyPreviewHeight, clampPreview(height))
}

func clampPreview(v int) int {
	if v < MinPreviewSize {
		return MinPreviewSize
	}
	if v > MaxPreviewSize {
		return MaxPreviewSize
	}
	return v
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetRevealOnComplete returns whether the last saved file is shown in the
// file manager once a folder is finished
func (s *Settings) GetRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealOnComplete, DefaultRevealOnComplete)
}

// SetRevealOnComplete sets whether to reveal the last saved file on completion
func (s *Settings) SetRevealOnComplete(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealOnComplete, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"uk":     "Українська",
		"ru":     "Русский",
	}
}
