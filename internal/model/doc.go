package model

// Package model defines domain data structures used across the app: queued
// files, categories, the pending edit for the current file, workflow states,
// and the error kinds shared by the workflow packages.
