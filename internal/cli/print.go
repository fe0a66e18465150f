package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

func ok(msg string) {
	fmt.Println(successStyle.Render("✔ " + msg))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✖ "+msg))
}

func hint(msg string) {
	fmt.Fprintln(os.Stderr, mutedStyle.Render(msg))
}

func panel(lines []string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// progressBar renders a Unicode bar with a done/total tail. The tail always
// shows the real counts; only the fill fraction guards against a zero divisor.
func progressBar(done, total, width int) string {
	if width < 5 {
		width = 5
	}
	denom := total
	if denom <= 0 {
		denom = 1
	}
	filled := int(float64(done) / float64(denom) * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) +
		fmt.Sprintf(" %d/%d", done, total)
}

// renderItem formats one item line: checkbox, name, quantity.
func renderItem(name, quantity string, completed bool) string {
	if completed {
		return successStyle.Render(boxChecked) + " " + doneStyle.Render(name+" — "+quantity)
	}
	return mutedStyle.Render(boxUnchecked) + " " + name + " " + mutedStyle.Render("— "+quantity)
}
