package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the triage controller, shows the preview of the
// current file and asks the user the controller's questions in dialogs. All UI
// strings are localized via Localization.
