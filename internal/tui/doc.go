// Package tui implements the interactive terminal remote.
//
// The application has two screens managed by a coordinator model:
// discovery (scan, pick, or manually enter a device) and remote (a key
// pad, a text entry mode, and a channel launcher driving one device).
// The remote screen samples the foreground app every few seconds so the
// status line tracks what's on screen.
//
// Built on bubbletea with bubbles components (list, spinner, textinput,
// help) and lipgloss styling.
package tui
