package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconLanguage = "🌐"
)

// Text fragments
const (
	DashPlaceholder = "—"
	CheckMark       = "✓ "
)

// Layout sizing
const (
	ControlPanelWidth float32 = 300
	NameEntryMinWidth float32 = 280

	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 360

	AddCategoryDialogWidth float32 = 360
)
