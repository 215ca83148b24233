package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examsim/internal/ui/theme"
)

// MultiChoice renders a labeled answer list for one exam question. The
// session screen owns the key handling; this component only tracks the
// highlighted row and the post-submit reveal state.
type MultiChoice struct {
	Labels   []string
	Options  map[string]string
	Selected int

	// Reveal state, meaningful only after a submit.
	Revealed     bool
	CorrectLabel string
	ChosenLabel  string
}

// NewMultiChoice creates a choice list over the given labels.
func NewMultiChoice(labels []string, options map[string]string) MultiChoice {
	return MultiChoice{
		Labels:  labels,
		Options: options,
	}
}

// MoveUp moves the highlight one row up.
func (m *MultiChoice) MoveUp() {
	if m.Selected > 0 {
		m.Selected--
	}
}

// MoveDown moves the highlight one row down.
func (m *MultiChoice) MoveDown() {
	if m.Selected < len(m.Labels)-1 {
		m.Selected++
	}
}

// Select jumps the highlight to the row with the given label. Returns false
// if the label is not one of the options.
func (m *MultiChoice) Select(label string) bool {
	for i, l := range m.Labels {
		if l == label {
			m.Selected = i
			return true
		}
	}
	return false
}

// SelectedLabel returns the label of the highlighted row.
func (m MultiChoice) SelectedLabel() string {
	if m.Selected < 0 || m.Selected >= len(m.Labels) {
		return ""
	}
	return m.Labels[m.Selected]
}

// Reveal switches the list into the post-submit state, coloring the correct
// and chosen rows.
func (m *MultiChoice) Reveal(correct, chosen string) {
	m.Revealed = true
	m.CorrectLabel = correct
	m.ChosenLabel = chosen
}

// View renders the option rows.
func (m MultiChoice) View() string {
	var s string
	for i, label := range m.Labels {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, m.Options[label])

		switch {
		case m.Revealed && label == m.CorrectLabel:
			s += theme.Correct.Render(line) + "\n"
		case m.Revealed && label == m.ChosenLabel:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
