package model

// Package model defines the data structures shared across the app: output
// kinds and form values for wallpaper requests, download tasks, and their
// status enum. Structures are designed for direct binding in the UI and
// explicit state transitions.
