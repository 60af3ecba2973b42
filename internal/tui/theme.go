package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the terminal UI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Semantic accents for the two item types and the two statuses.
	FoundAccent    lipgloss.Color
	LostAccent     lipgloss.Color
	ActiveAccent   lipgloss.Color
	ResolvedAccent lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),

	FoundAccent:    lipgloss.Color("42"),
	LostAccent:     lipgloss.Color("208"),
	ActiveAccent:   lipgloss.Color("42"),
	ResolvedAccent: lipgloss.Color("243"),

	HeaderForeground: lipgloss.Color("75"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("243"),
	ErrorText:        lipgloss.Color("203"),
}

// typeAccent picks the accent color for an item type string.
func (theme Theme) typeAccent(typ string) lipgloss.Color {
	if typ == "found" {
		return theme.FoundAccent
	}
	return theme.LostAccent
}
