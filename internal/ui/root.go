package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/doc-sorter/internal/config"
	"github.com/ytget/doc-sorter/internal/model"
	"github.com/ytget/doc-sorter/internal/platform"
	"github.com/ytget/doc-sorter/internal/triage"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	ctrl         *triage.Controller
	settings     *config.Settings
	localization *Localization

	// Control panel
	selectFolderBtn *widget.Button
	folderLabel     *widget.Label
	currentLabel    *widget.Label
	nameLabel       *widget.Label
	nameEntry       *widget.Entry
	categoryLabel   *widget.Label
	categorySelect  *widget.Select
	addCategoryBtn  *widget.Button
	convertCheck    *widget.Check
	remainingLabel  *widget.Label
	saveBtn         *widget.Button
	openBtn         *widget.Button

	// Preview panel
	previewImage  *canvas.Image
	previewScroll *container.Scroll

	// last file written in the current folder, revealed on completion
	lastSaved string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, ctrl *triage.Controller) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctrl.SetPreviewBounds(settings.GetPreviewWidth(), settings.GetPreviewHeight())

	ui := &RootUI{
		window:       window,
		ctrl:         ctrl,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	log.Printf("RootUI initialized with %d categories", len(ctrl.Categories()))
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()
	l := ui.localization

	ui.selectFolderBtn = widget.NewButton(l.GetText(KeySelectFolder), ui.onSelectFolder)
	ui.selectFolderBtn.Importance = widget.HighImportance

	ui.folderLabel = widget.NewLabel(l.GetText(KeyNoFolder))
	ui.folderLabel.Truncation = fyne.TextTruncateEllipsis

	ui.currentLabel = widget.NewLabel(DashPlaceholder)
	ui.currentLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.currentLabel.Truncation = fyne.TextTruncateEllipsis

	ui.nameLabel = widget.NewLabel(l.GetText(KeyNewName))
	ui.nameEntry = widget.NewEntry()
	ui.nameEntry.SetPlaceHolder(l.GetText(KeyNamePlaceholder))
	ui.nameEntry.OnChanged = ui.ctrl.SetName
	// Save when user presses Enter in the name field
	ui.nameEntry.OnSubmitted = func(string) {
		ui.onSave()
	}

	ui.categoryLabel = widget.NewLabel(l.GetText(KeyCategory))
	ui.categorySelect = widget.NewSelect(nil, ui.ctrl.SetCategory)
	ui.refreshCategories(ui.ctrl.Categories())
	ui.categorySelect.SetSelected(ui.ctrl.Pending().Category)

	ui.addCategoryBtn = widget.NewButton(l.GetText(KeyAddCategory), ui.onAddCategory)

	ui.convertCheck = widget.NewCheck(l.GetText(KeyConvertToPDF), ui.ctrl.SetConvert)
	ui.convertCheck.Hide()

	ui.remainingLabel = widget.NewLabel("")
	ui.updateRemaining(0)

	ui.saveBtn = widget.NewButton(l.GetText(KeySaveAndNext), ui.onSave)
	ui.saveBtn.Importance = widget.HighImportance
	ui.saveBtn.Disable()

	ui.openBtn = widget.NewButton(l.GetText(KeyOpenFile), ui.onOpenFile)
	ui.openBtn.Disable()

	// Keeps the panel from collapsing to the widest label
	panelWidth := canvas.NewRectangle(color.Transparent)
	panelWidth.SetMinSize(fyne.NewSize(ControlPanelWidth, 0))

	controls := container.NewVBox(
		panelWidth,
		ui.selectFolderBtn,
		ui.folderLabel,
		widget.NewSeparator(),
		ui.currentLabel,
		ui.nameLabel,
		ui.nameEntry,
		ui.categoryLabel,
		ui.categorySelect,
		ui.addCategoryBtn,
		ui.convertCheck,
		ui.remainingLabel,
		ui.saveBtn,
		ui.openBtn,
	)

	ui.previewImage = canvas.NewImageFromImage(nil)
	ui.previewImage.FillMode = canvas.ImageFillContain
	ui.previewImage.ScaleMode = canvas.ImageScaleSmooth
	ui.previewScroll = container.NewScroll(container.NewCenter(ui.previewImage))
	previewPanel := container.NewStack(canvas.NewRectangle(previewBackground), ui.previewScroll)

	content := container.NewBorder(nil, nil, container.NewPadded(controls), nil, previewPanel)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	l := ui.localization

	fileMenu := fyne.NewMenu(l.GetText(KeyFile),
		fyne.NewMenuItem(l.GetText(KeySelectFolder), ui.onSelectFolder),
		fyne.NewMenuItem(l.GetText(KeyAddCategory), ui.onAddCategory),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings),
	)

	// Language submenu
	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	availableLanguages := l.GetAvailableLanguages()
	for _, code := range l.languageCodes() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if l.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, languageMenu))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.selectFolderBtn.SetText(l.GetText(KeySelectFolder))
	if ui.ctrl.Folder() == "" {
		ui.folderLabel.SetText(l.GetText(KeyNoFolder))
	}
	ui.nameLabel.SetText(l.GetText(KeyNewName))
	ui.nameEntry.SetPlaceHolder(l.GetText(KeyNamePlaceholder))
	ui.categoryLabel.SetText(l.GetText(KeyCategory))
	ui.addCategoryBtn.SetText(l.GetText(KeyAddCategory))
	ui.convertCheck.Text = l.GetText(KeyConvertToPDF)
	ui.convertCheck.Refresh()
	ui.updateRemaining(ui.ctrl.Remaining())
	ui.saveBtn.SetText(l.GetText(KeySaveAndNext))
	ui.openBtn.SetText(l.GetText(KeyOpenFile))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies stored settings; new preview bounds are used from the next file on
func (ui *RootUI) onSettingsSaved() {
	ui.ctrl.SetPreviewBounds(ui.settings.GetPreviewWidth(), ui.settings.GetPreviewHeight())

	lang := ui.settings.GetLanguage()
	if lang != ui.localization.GetCurrentLanguage() {
		ui.localization.SetLanguage(lang)
		ui.refreshUITexts()
		ui.createMenu()
	}
}

// onSelectFolder asks for a folder, starting at the last one used
func (ui *RootUI) onSelectFolder() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(ui.localization.GetText(KeyCannotReadFolder), err)
			return
		}
		if uri == nil {
			return
		}
		ui.openFolder(uri.Path())
	}, ui.window)

	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetLastFolder())); err == nil {
		d.SetLocation(lister)
	}
	d.Show()
}

// openFolder starts triage of folder
func (ui *RootUI) openFolder(folder string) {
	log.Printf("Opening folder: %s", folder)

	out := ui.ctrl.SelectFolder(folder)
	if out.Kind == triage.OutcomeFailed {
		ui.showError(ui.localization.GetText(KeyCannotReadFolder), out.Err)
		return
	}

	ui.settings.SetLastFolder(folder)
	ui.folderLabel.SetText(folder)
	ui.lastSaved = ""
	ui.apply(out)
}

// onSave handles the save button click
func (ui *RootUI) onSave() {
	ui.save(triage.Confirmations{})
}

// save runs one save attempt; questions from the controller are asked in a
// dialog and the attempt is repeated with the answer added
func (ui *RootUI) save(confirm triage.Confirmations) {
	out := ui.ctrl.Save(confirm)
	if out.Kind == triage.OutcomeNeedsConfirmation {
		ui.askConfirmation(out.Prompt, confirm)
		return
	}
	ui.apply(out)
}

func (ui *RootUI) askConfirmation(prompt triage.Prompt, confirm triage.Confirmations) {
	l := ui.localization

	var title, message string
	switch prompt {
	case triage.PromptUncategorized:
		confirm.Uncategorized = true
		title = l.GetText(KeyConfirm)
		message = fmt.Sprintf(l.GetText(KeyConfirmUncategorized), ui.ctrl.Pending().Category)
	case triage.PromptCollision:
		confirm.Suffix = true
		title = l.GetText(KeyFileExists)
		message = l.GetText(KeyConfirmSuffix)
	default:
		log.Printf("Unknown confirmation prompt %d", prompt)
		return
	}

	dialog.ShowConfirm(title, message, func(ok bool) {
		if !ok {
			log.Printf("Save cancelled by user")
			return
		}
		ui.save(confirm)
	}, ui.window)
}

// apply updates the window from a controller outcome
func (ui *RootUI) apply(out triage.Outcome) {
	if out.Destination != "" {
		ui.lastSaved = out.Destination
	}
	ui.updateRemaining(out.Remaining)

	switch out.Kind {
	case triage.OutcomeReady, triage.OutcomeSaved:
		if !out.HasEntry() {
			log.Printf("Outcome %s carries no file", out.Kind)
			return
		}
		ui.showEntry(out)
	case triage.OutcomeCompleted:
		ui.showCompleted(out)
	case triage.OutcomeInvalid:
		ui.showError(ui.localizeError(out.Err), nil)
	case triage.OutcomeFailed:
		ui.showError(ui.localization.GetText(KeyCannotSave), out.Err)
	}
}

// showEntry displays the file the controller just loaded
func (ui *RootUI) showEntry(out triage.Outcome) {
	entry := out.Entry

	ui.currentLabel.SetText(entry.Name())
	ui.window.SetTitle(fmt.Sprintf("%s - %s", ui.localization.GetText(KeyAppTitle), entry.GetDisplayTitle()))

	// Mirror the reset edit; these fire the controller setters with the same values
	pending := ui.ctrl.Pending()
	ui.nameEntry.SetText(pending.Name)
	ui.categorySelect.SetSelected(pending.Category)
	ui.convertCheck.SetChecked(pending.ConvertToPDF)
	if entry.IsImage() {
		ui.convertCheck.Show()
	} else {
		ui.convertCheck.Hide()
	}

	ui.saveBtn.Enable()
	ui.openBtn.Enable()
	ui.showPreview(out.Preview)
	ui.window.Canvas().Focus(ui.nameEntry)

	if out.PreviewErr != nil {
		ui.showError(ui.localization.GetText(KeyCannotLoadFile), out.PreviewErr)
	}
}

// showCompleted clears the panel once no files are left
func (ui *RootUI) showCompleted(out triage.Outcome) {
	ui.currentLabel.SetText(DashPlaceholder)
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.nameEntry.SetText("")
	ui.convertCheck.Hide()
	ui.saveBtn.Disable()
	ui.openBtn.Disable()
	ui.showPreview(nil)

	if !out.Completed {
		return
	}

	dialog.ShowInformation(ui.localization.GetText(KeyDone), ui.localization.GetText(KeyAllFilesProcessed), ui.window)

	if ui.settings.GetRevealOnComplete() && ui.lastSaved != "" {
		log.Printf("Auto-revealing last saved file: %s", ui.lastSaved)
		ui.onRevealFile(ui.lastSaved)
	}
}

// showPreview replaces the preview image, nil clears it
func (ui *RootUI) showPreview(img image.Image) {
	ui.previewImage.Image = img
	size := fyne.NewSize(0, 0)
	if img != nil {
		b := img.Bounds()
		size = fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
	}
	ui.previewImage.SetMinSize(size)
	ui.previewImage.Refresh()
	ui.previewScroll.ScrollToTop()
}

func (ui *RootUI) updateRemaining(n int) {
	ui.remainingLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyRemaining), n))
}

func (ui *RootUI) refreshCategories(categories []model.Category) {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	ui.categorySelect.SetOptions(names)
}

// onAddCategory asks for a category name and then its folder
func (ui *RootUI) onAddCategory() {
	l := ui.localization

	nameEntry := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem(l.GetText(KeyCategoryName), nameEntry)}

	d := dialog.NewForm(l.GetText(KeyNewCategory), l.GetText(KeyAdd), l.GetText(KeyCancel), items, func(ok bool) {
		name := strings.TrimSpace(nameEntry.Text)
		if !ok || name == "" {
			return
		}
		ui.chooseCategoryFolder(name)
	}, ui.window)
	d.Resize(fyne.NewSize(AddCategoryDialogWidth, d.MinSize().Height))
	d.Show()
}

func (ui *RootUI) chooseCategoryFolder(name string) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(ui.localization.GetText(KeyChooseCategoryFolder), err)
			return
		}
		if uri == nil {
			return
		}
		ui.addCategory(name, uri.Path())
	}, ui.window)
}

// addCategory stores the category and selects it
func (ui *RootUI) addCategory(name, dir string) {
	categories, err := ui.ctrl.AddCategory(name, dir)
	if err != nil {
		ui.showError(ui.localization.GetText(KeyAddCategory), err)
		return
	}

	log.Printf("Category added: %s -> %s", name, dir)
	ui.refreshCategories(categories)
	ui.categorySelect.SetSelected(ui.ctrl.Pending().Category)
}

// onOpenFile opens the current file with the default application
func (ui *RootUI) onOpenFile() {
	entry, ok := ui.ctrl.Current()
	if !ok {
		return
	}

	if err := platform.OpenFileWithDefaultApp(entry.Path); err != nil {
		log.Printf("Error opening file %s: %v", entry.Path, err)
		ui.showError(ui.localization.GetText(KeyErrorOpeningFile), err)
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showError(ui.localization.GetText(KeyErrorOpeningFile), err)
	}
}

// ShowCategoryFileError tells the user the category file was unreadable
func (ui *RootUI) ShowCategoryFileError(err error) {
	ui.showError(ui.localization.GetText(KeyCategoryFileError), err)
}

// localizeError maps validation errors to user text
func (ui *RootUI) localizeError(err error) string {
	l := ui.localization

	switch {
	case errors.Is(err, triage.ErrNameRequired):
		return l.GetText(KeyNameRequired)
	case errors.Is(err, triage.ErrInvalidName):
		return fmt.Sprintf("%s (%v)", l.GetText(KeyInvalidName), err)
	case errors.Is(err, triage.ErrCategoryRequired):
		return l.GetText(KeyCategoryRequired)
	case errors.Is(err, triage.ErrNoCurrentFile):
		return l.GetText(KeyNoFileSelected)
	default:
		return fmt.Sprintf("%s: %v", l.GetText(KeyCannotSave), err)
	}
}

func (ui *RootUI) showError(message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
		message = fmt.Sprintf("%s:\n%v", message, err)
	}
	dialog.ShowError(errors.New(message), ui.window)
}
