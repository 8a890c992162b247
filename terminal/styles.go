package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mensylisir/xmupgrade/report"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
	colorError   = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
)

// Styles holds the lipgloss styles used by a Terminal.
type Styles struct {
	Header  lipgloss.Style
	Prompt  lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Ignored lipgloss.Style
	Skipped lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:  r.NewStyle().Bold(true).Foreground(colorPrimary),
		Prompt:  r.NewStyle().Bold(true).Foreground(colorWarning),
		Error:   r.NewStyle().Bold(true).Foreground(colorError),
		Hint:    r.NewStyle().Italic(true).Foreground(colorMuted),
		Success: r.NewStyle().Bold(true).Foreground(colorSuccess),
		Failure: r.NewStyle().Bold(true).Foreground(colorError),
		Ignored: r.NewStyle().Bold(true).Foreground(colorWarning),
		Skipped: r.NewStyle().Foreground(colorMuted),
	}
}

func (s Styles) status(st report.Status) lipgloss.Style {
	switch st {
	case report.StatusSuccess:
		return s.Success
	case report.StatusFailure:
		return s.Failure
	case report.StatusIgnored:
		return s.Ignored
	default:
		return s.Skipped
	}
}
