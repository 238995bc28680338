// Package ui provides terminal styling and status reporting for the
// motion-core CLI. Colors follow the Motion Core brand palette.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand palette. The orange is the Motion Core primary.
var (
	BrandColor   = lipgloss.Color("#FF6900")
	SuccessColor = lipgloss.Color("#22C55E")
	WarningColor = lipgloss.Color("#EAB308")
	DangerColor  = lipgloss.Color("#EF4444")
)

// Styles bundles the lipgloss styles the reporter and commands render with.
type Styles struct {
	Brand   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

// DefaultStyles builds the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Brand:   lipgloss.NewStyle().Foreground(BrandColor),
		Heading: lipgloss.NewStyle().Foreground(BrandColor).Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Foreground(SuccessColor).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(WarningColor),
		Danger:  lipgloss.NewStyle().Foreground(DangerColor).Bold(true),
	}
}
