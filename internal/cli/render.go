package cli

import (
	"fmt"
	"io"
	"strings"

	"book-recommender/backend/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerColor  = lipgloss.Color("#F780FF")
	titleColor   = lipgloss.Color("#8BE9FD")
	bodyColor    = lipgloss.Color("#E9E9F4")
	mutedColor   = lipgloss.Color("#6272A4")
	errorColor   = lipgloss.Color("#FF5555")
	successColor = lipgloss.Color("#50FA7B")

	headerStyle  = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	titleStyle   = lipgloss.NewStyle().Foreground(titleColor).Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(bodyColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
)

// renderRecommendation prints one result. n is 1-based.
func renderRecommendation(w io.Writer, n int, rec *model.Recommendation, verbose bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("📘 Recommended Book #%d", n)))
	if rec.Title != "" {
		fmt.Fprintln(w, titleStyle.Render(rec.Title))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, bodyStyle.Render(strings.TrimSpace(rec.Body)))

	if verbose {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render("hint: "+rec.Hint))
		fmt.Fprintln(w, mutedStyle.Render("prompt: "+rec.Prompt))
	}
}

func renderHistory(w io.Writer, titles []string) {
	if len(titles) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✓ Suggested this session: %s", strings.Join(titles, ", "))))
}

func renderList(w io.Writer, header string, items []string) {
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, item := range items {
		fmt.Fprintln(w, bodyStyle.Render("  • "+item))
	}
}
