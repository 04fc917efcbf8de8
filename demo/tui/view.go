package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🎬 Paper Video Pipeline Demo"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Run details
	if m.Status != nil {
		if m.Status.SceneCount > 0 {
			b.WriteString(MutedStyle.Render(fmt.Sprintf("📊 Scenes: %d", m.Status.SceneCount)))
			b.WriteString("\n")
		}
		for _, w := range m.Status.Warnings {
			b.WriteString(WarningStyle.Render("   ⚠️  " + w.Message))
			b.WriteString("\n")
		}
	}

	// Result
	if m.State == StateComplete && m.Status != nil {
		result := fmt.Sprintf("%s\n\nVideo: %s\nDuration: %.1fs",
			DoneStyle.Render("Finished Video"),
			m.Status.ArtifactPath,
			m.Status.DurationSec)
		b.WriteString(ArtifactBoxStyle.Render(result))
		b.WriteString("\n\n")
	}

	// Help text
	if m.State == StateIdle {
		b.WriteString(MutedStyle.Render("Press 'd' to render | 'a' to toggle aspect | 'q' or Ctrl+C to quit"))
	} else if m.State == StateComplete || m.State == StateError {
		b.WriteString(MutedStyle.Render("Press 'd' to render again | 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(MutedStyle.Render("Press 'q' or Ctrl+C to quit"))
	}

	return b.String()
}
