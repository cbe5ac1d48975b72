package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *model) View() string {
	parts := []string{m.headerView()}
	switch m.active {
	case tabChat:
		parts = append(parts, m.viewChat())
	case tabAnalyze:
		parts = append(parts, m.viewAnalyze())
	case tabMetrics:
		parts = append(parts, m.viewMetrics())
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), m.infoMessage)))
	}
	parts = append(parts, helperStyle.Render(m.footerHelp()))
	return joinNonEmpty(parts)
}

func (m *model) headerView() string {
	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		style := inactiveTabStyle
		if tab(i) == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	return joinNonEmpty([]string{
		titleStyle.Render(heroTagline),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	})
}

func (m *model) viewChat() string {
	m.refreshStreamIfDirty()
	body := strings.TrimSpace(m.stream.View())
	if body == "" {
		body = helperStyle.Render("Say something to start a conversation.")
	}
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Conversation"),
		body,
		m.chatModeLine(),
		m.composer.View(),
	})
}

func (m *model) chatModeLine() string {
	return helperStyle.Render(fmt.Sprintf(
		"mode: %s • style: %s • provider: %s",
		m.chatMode, m.style, m.provider,
	))
}

func (m *model) refreshStreamIfDirty() {
	if !m.streamDirty {
		return
	}
	wrap := m.wrapWidth()
	var b strings.Builder
	for i, exchange := range m.exchanges {
		b.WriteString(promptStyle.Render("You"))
		b.WriteRune('\n')
		b.WriteString(wordwrap.String(exchange.Prompt, wrap))
		b.WriteRune('\n')
		b.WriteString(promptStyle.Render("Assistant"))
		b.WriteRune('\n')
		switch {
		case exchange.Pending:
			b.WriteString(helperStyle.Render("…thinking"))
		case exchange.Failed:
			b.WriteString(replyFailedStyle.Render(wordwrap.String(exchange.Reply, wrap)))
		default:
			b.WriteString(wordwrap.String(exchange.Reply, wrap))
		}
		if i < len(m.exchanges)-1 {
			b.WriteString("\n\n")
		}
	}
	m.stream.SetContent(b.String())
	m.stream.GotoBottom()
	m.streamDirty = false
}

func (m *model) viewAnalyze() string {
	parts := []string{sectionHeaderStyle.Render("Emotion Analysis")}
	switch m.analysis {
	case analysisIdle:
		parts = append(parts, helperStyle.Render("No analysis yet. Point me at a file or a YouTube link."))
	case analysisRunning:
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Analyzing %s…", m.spinner.View(), trimmedPreview(m.analysisInput, 60))))
	case analysisFailed:
		parts = append(parts,
			errorStyle.Render("Analysis failed: "+m.analysisErr),
			helperStyle.Render("Fix the input and try again."),
		)
	case analysisDone:
		parts = append(parts, m.resultCard())
	}
	parts = append(parts, m.composer.View())
	return joinNonEmpty(parts)
}

func (m *model) resultCard() string {
	if m.result == nil {
		return ""
	}
	result := m.result
	var b strings.Builder
	fmt.Fprintf(&b, "Dominant mood: %s\n", titleStyle.Render(result.DominantMood))
	fmt.Fprintf(&b, "Intensity: %s • Confidence: %d%%\n", result.Intensity, result.Confidence)

	if len(result.EmotionalArc) > 0 {
		b.WriteString("Emotional arc: ")
		b.WriteString(sparkline(result.EmotionalArc))
		b.WriteRune('\n')
	}

	b.WriteString("Breakdown (synthesized):\n")
	for _, emotion := range result.Emotions {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(emotion.DisplayColor))
		fmt.Fprintf(&b, "  %s %s %d%%\n", swatch.Render("■"), emotion.Label, emotion.Percentage)
	}
	return strings.TrimRight(b.String(), "\n")
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func sparkline(samples []int) string {
	var b strings.Builder
	for _, sample := range samples {
		idx := sample * len(sparkRunes) / 101
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func (m *model) viewMetrics() string {
	parts := []string{
		sectionHeaderStyle.Render("Usage"),
		fmt.Sprintf("Conversations: %s", metricValueStyle.Render(fmt.Sprintf("%d", m.dashboard.TotalConversations))),
		fmt.Sprintf("Videos processed: %s", metricValueStyle.Render(fmt.Sprintf("%d", m.dashboard.VideosProcessed))),
		fmt.Sprintf("AI accuracy: %s", metricValueStyle.Render(fmt.Sprintf("%d%%", m.dashboard.AIAccuracyScore))),
	}
	parts = append(parts, sectionHeaderStyle.Render("Document Index"))
	if m.statsErr != "" {
		parts = append(parts, helperStyle.Render("index stats unavailable: "+m.statsErr))
	} else {
		parts = append(parts, fmt.Sprintf("%d chunks across %d documents", m.stats.TotalChunks, m.stats.UniqueDocuments))
	}
	parts = append(parts, helperStyle.Render("Enter refreshes index stats."))
	return joinNonEmpty(parts)
}

func (m *model) footerHelp() string {
	base := "Tab: switch view • Ctrl+C: quit"
	if m.active == tabChat {
		base += " • Ctrl+R: mode • Ctrl+S: style • Ctrl+P: provider"
	}
	if m.runningJobs > 0 {
		base += fmt.Sprintf(" • %d job(s) running", m.runningJobs)
	}
	return base
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			filtered = append(filtered, part)
		}
	}
	return strings.Join(filtered, "\n")
}
