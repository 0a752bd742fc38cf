package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Path    lipgloss.Style
	Caret   lipgloss.Style
	Keyword lipgloss.Style
}

// NewStyles returns colored styles when color is true and unstyled ones
// otherwise.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header: plain, Bold: plain, Muted: plain, Success: plain,
			Warning: plain, Error: plain, Path: plain, Caret: plain, Keyword: plain,
		}
	}
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Underline(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Caret:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Keyword: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
	}
}
