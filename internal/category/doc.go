package category

// Package category persists the user's category → destination directory
// mapping as a flat YAML file. The store is append-only: categories can be
// added but never renamed or removed, and every addition is written to disk
// before it is reported as successful.
