package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/doc-sorter/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	widthEntry     *widget.Entry
	heightEntry    *widget.Entry
	languageSelect *widget.Select
	revealCheck    *widget.Check

	// display name -> language code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// new values are stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.widthEntry = widget.NewEntry()
	sd.widthEntry.SetPlaceHolder(strconv.Itoa(config.DefaultPreviewWidth))
	sd.widthEntry.Validator = validatePreviewSize

	sd.heightEntry = widget.NewEntry()
	sd.heightEntry.SetPlaceHolder(strconv.Itoa(config.DefaultPreviewHeight))
	sd.heightEntry.Validator = validatePreviewSize

	// Language selection shows display names, stores codes
	sd.languageCodes = make(map[string]string)
	var languageOptions []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.revealCheck = widget.NewCheck(l.GetText(KeyRevealOnComplete), nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyPreviewWidth)),
		sd.widthEntry,

		widget.NewLabel(l.GetText(KeyPreviewHeight)),
		sd.heightEntry,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)),
		sd.languageSelect,

		sd.revealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.widthEntry.SetText(strconv.Itoa(sd.settings.GetPreviewWidth()))
	sd.heightEntry.SetText(strconv.Itoa(sd.settings.GetPreviewHeight()))
	sd.revealCheck.SetChecked(sd.settings.GetRevealOnComplete())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if width, err := strconv.Atoi(sd.widthEntry.Text); err == nil {
		sd.settings.SetPreviewWidth(width)
	}
	if height, err := strconv.Atoi(sd.heightEntry.Text); err == nil {
		sd.settings.SetPreviewHeight(height)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetRevealOnComplete(sd.revealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

func validatePreviewSize(text string) error {
	if text == "" {
		return nil
	}
	_, err := strconv.Atoi(text)
	return err
}
