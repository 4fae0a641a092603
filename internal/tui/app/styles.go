package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/noted/internal/feedback"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Bold(true).
			Padding(0, 1)

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0AF"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle.Copy()
	noStyle      = lipgloss.NewStyle()

	focusedButton = focusedStyle.Copy().Render

	blurredButton = blurredStyle.Copy().Render

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94")).
			PaddingLeft(2)

	successToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF")).
				Background(lipgloss.Color("#2A9D8F")).
				Padding(0, 1)

	errorToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#E63946")).
			Padding(0, 1)

	listStyle = lipgloss.NewStyle().
			MarginRight(1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	editorStyle = lipgloss.NewStyle().MarginLeft(1)

	previewStyle = lipgloss.NewStyle().
			MarginTop(1).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#334455"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
)

func renderToast(msg feedback.Message) string {
	if msg.Severity == feedback.Error {
		return errorToastStyle.Render(msg.Text)
	}
	return successToastStyle.Render(msg.Text)
}

func renderHelpWithinWidth(width int, content string) string {
	if width <= 0 {
		return helpStyle.Render(content)
	}

	return helpStyle.Copy().
		Width(width).
		MaxWidth(width).
		Render(content)
}
