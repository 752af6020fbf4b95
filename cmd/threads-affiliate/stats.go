package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/camreview/threads-affiliate/db/models"
)

var (
	statsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))
)

func renderStats(stats models.Stats) string {
	rows := []struct {
		label string
		value int64
	}{
		{"Total posts", stats.TotalPosts},
		{"Published", stats.Published},
		{"Unpublished", stats.Unpublished},
		{"Shopee links", stats.TotalShopeeLinks},
		{"Converted links", stats.ConvertedLinks},
	}

	var b strings.Builder
	b.WriteString(statsTitleStyle.Render("Post Store"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(statsLabelStyle.Render(row.label))
		b.WriteString(statsValueStyle.Render(fmt.Sprintf("%d", row.value)))
		b.WriteString("\n")
	}
	return b.String()
}
