package ui

import "sort"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeySelectFolder         = "select_folder"
	KeyNoFolder             = "no_folder"
	KeyNewName              = "new_name"
	KeyNamePlaceholder      = "name_placeholder"
	KeyCategory             = "category"
	KeyAddCategory          = "add_category"
	KeyNewCategory          = "new_category"
	KeyCategoryName         = "category_name"
	KeyChooseCategoryFolder = "choose_category_folder"
	KeyConvertToPDF         = "convert_to_pdf"
	KeyRemaining            = "remaining"
	KeySaveAndNext          = "save_and_next"
	KeyOpenFile             = "open_file"
	KeySettings             = "settings"
	KeyFile                 = "file"
	KeyLanguage             = "language"
	KeyPreviewWidth         = "preview_width"
	KeyPreviewHeight        = "preview_height"
	KeyRevealOnComplete     = "reveal_on_complete"
	KeySave                 = "save"
	KeyCancel               = "cancel"
	KeyAdd                  = "add"
	KeySettingsSaved        = "settings_saved"
	KeyConfirm              = "confirm"
	KeyConfirmUncategorized = "confirm_uncategorized"
	KeyFileExists           = "file_exists"
	KeyConfirmSuffix        = "confirm_suffix"
	KeyDone                 = "done"
	KeyAllFilesProcessed    = "all_files_processed"
	KeyNameRequired         = "name_required"
	KeyInvalidName          = "invalid_name"
	KeyCategoryRequired     = "category_required"
	KeyNoFileSelected       = "no_file_selected"
	KeyCannotSave           = "cannot_save"
	KeyCannotLoadFile       = "cannot_load_file"
	KeyCannotReadFolder     = "cannot_read_folder"
	KeyCategoryFileError    = "category_file_error"
	KeyErrorOpeningFile     = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"uk": "Українська",
		"ru": "Русский",
	}
}

// languageCodes returns the available language codes in a stable order
func (l *Localization) languageCodes() []string {
	codes := make([]string, 0, len(l.texts))
	for code := range l.GetAvailableLanguages() {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "Doc Sorter",
		KeySelectFolder:         "Select folder",
		KeyNoFolder:             "No folder selected",
		KeyNewName:              "New file name:",
		KeyNamePlaceholder:      "Name without extension",
		KeyCategory:             "Save to category:",
		KeyAddCategory:          "Add category",
		KeyNewCategory:          "New category",
		KeyCategoryName:         "Category name",
		KeyChooseCategoryFolder: "Choose the folder for this category",
		KeyConvertToPDF:         "Convert image to PDF",
		KeyRemaining:            "Files remaining: %d",
		KeySaveAndNext:          "Save and go to next",
		KeyOpenFile:             "Open in default app",
		KeySettings:             "Settings",
		KeyFile:                 "File",
		KeyLanguage:             "Language",
		KeyPreviewWidth:         "Max preview width",
		KeyPreviewHeight:        "Max preview height",
		KeyRevealOnComplete:     "Show last saved file when a folder is done",
		KeySave:                 "Save",
		KeyCancel:               "Cancel",
		KeyAdd:                  "Add",
		KeySettingsSaved:        "Settings saved successfully!",
		KeyConfirm:              "Confirmation",
		KeyConfirmUncategorized: "You selected the '%s' category. Continue?",
		KeyFileExists:           "File exists",
		KeyConfirmSuffix:        "A file with this name already exists. Add a number to the name?",
		KeyDone:                 "Done",
		KeyAllFilesProcessed:    "All files have been processed",
		KeyNameRequired:         "Enter a name",
		KeyInvalidName:          "The name cannot be used",
		KeyCategoryRequired:     "Select a category",
		KeyNoFileSelected:       "There is no file to save. Select a folder first",
		KeyCannotSave:           "Could not save",
		KeyCannotLoadFile:       "Could not load the file",
		KeyCannotReadFolder:     "Could not read the folder",
		KeyCategoryFileError:    "The category file could not be read. Default categories are used and changes will not be saved",
		KeyErrorOpeningFile:     "Error opening file",
	}

	// Ukrainian texts
	l.texts["uk"] = map[string]string{
		KeyAppTitle:             "Сортувальник документів",
		KeySelectFolder:         "Обрати папку",
		KeyNoFolder:             "Папку не обрано",
		KeyNewName:              "Нове ім'я файла:",
		KeyNamePlaceholder:      "Ім'я без розширення",
		KeyCategory:             "Категорія збереження:",
		KeyAddCategory:          "Додати нову категорію",
		KeyNewCategory:          "Нова категорія",
		KeyCategoryName:         "Назва категорії",
		KeyChooseCategoryFolder: "Оберіть папку для збереження",
		KeyConvertToPDF:         "Конвертувати зображення в PDF",
		KeyRemaining:            "Файлів залишилось: %d",
		KeySaveAndNext:          "Зберегти і перейти до наступного",
		KeyOpenFile:             "Відкрити у програмі за замовчуванням",
		KeySettings:             "Налаштування",
		KeyFile:                 "Файл",
		KeyLanguage:             "Мова",
		KeyPreviewWidth:         "Макс. ширина перегляду",
		KeyPreviewHeight:        "Макс. висота перегляду",
		KeyRevealOnComplete:     "Показати останній збережений файл після завершення",
		KeySave:                 "Зберегти",
		KeyCancel:               "Скасувати",
		KeyAdd:                  "Додати",
		KeySettingsSaved:        "Налаштування збережено!",
		KeyConfirm:              "Підтвердження",
		KeyConfirmUncategorized: "Ви обрали категорію '%s'. Продовжити?",
		KeyFileExists:           "Файл існує",
		KeyConfirmSuffix:        "Файл з такою назвою вже існує. Додати індекс до імені?",
		KeyDone:                 "Готово",
		KeyAllFilesProcessed:    "Всі файли оброблені",
		KeyNameRequired:         "Введіть ім'я",
		KeyInvalidName:          "Це ім'я не можна використати",
		KeyCategoryRequired:     "Виберіть категорію",
		KeyNoFileSelected:       "Немає файла для збереження. Спочатку оберіть папку",
		KeyCannotSave:           "Не вдалося зберегти",
		KeyCannotLoadFile:       "Не вдалося завантажити файл",
		KeyCannotReadFolder:     "Не вдалося прочитати папку",
		KeyCategoryFileError:    "Не вдалося прочитати файл категорій. Використовуються типові категорії, зміни не зберігаються",
		KeyErrorOpeningFile:     "Помилка відкриття файла",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:             "Сортировщик документов",
		KeySelectFolder:         "Выбрать папку",
		KeyNoFolder:             "Папка не выбрана",
		KeyNewName:              "Новое имя файла:",
		KeyNamePlaceholder:      "Имя без расширения",
		KeyCategory:             "Категория сохранения:",
		KeyAddCategory:          "Добавить категорию",
		KeyNewCategory:          "Новая категория",
		KeyCategoryName:         "Название категории",
		KeyChooseCategoryFolder: "Выберите папку для сохранения",
		KeyConvertToPDF:         "Конвертировать изображение в PDF",
		KeyRemaining:            "Осталось файлов: %d",
		KeySaveAndNext:          "Сохранить и перейти к следующему",
		KeyOpenFile:             "Открыть в программе по умолчанию",
		KeySettings:             "Настройки",
		KeyFile:                 "Файл",
		KeyLanguage:             "Язык",
		KeyPreviewWidth:         "Макс. ширина просмотра",
		KeyPreviewHeight:        "Макс. высота просмотра",
		KeyRevealOnComplete:     "Показать последний сохранённый файл после завершения",
		KeySave:                 "Сохранить",
		KeyCancel:               "Отмена",
		KeyAdd:                  "Добавить",
		KeySettingsSaved:        "Настройки успешно сохранены!",
		KeyConfirm:              "Подтверждение",
		KeyConfirmUncategorized: "Вы выбрали категорию '%s'. Продолжить?",
		KeyFileExists:           "Файл существует",
		KeyConfirmSuffix:        "Файл с таким именем уже существует. Добавить индекс к имени?",
		KeyDone:                 "Готово",
		KeyAllFilesProcessed:    "Все файлы обработаны",
		KeyNameRequired:         "Введите имя",
		KeyInvalidName:          "Это имя нельзя использовать",
		KeyCategoryRequired:     "Выберите категорию",
		KeyNoFileSelected:       "Нет файла для сохранения. Сначала выберите папку",
		KeyCannotSave:           "Не удалось сохранить",
		KeyCannotLoadFile:       "Не удалось загрузить файл",
		KeyCannotReadFolder:     "Не удалось прочитать папку",
		KeyCategoryFileError:    "Не удалось прочитать файл категорий. Используются категории по умолчанию, изменения не сохраняются",
		KeyErrorOpeningFile:     "Ошибка открытия файла",
	}
}
