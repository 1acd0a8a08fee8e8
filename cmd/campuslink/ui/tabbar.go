package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campuslink/internal/nav"
)

// tabOrder is the bottom bar layout, publish in the center.
var tabOrder = []nav.Tab{
	nav.TabHome, nav.TabMarket, nav.TabPublish, nav.TabMessage, nav.TabProfile,
}

// RenderTabBar renders the bottom tab bar. The publish entry renders as an
// action button; hasUnread puts a dot on the message tab.
func RenderTabBar(s Styles, active nav.Tab, hasUnread bool, width int) string {
	cells := make([]string, 0, len(tabOrder))
	for _, t := range tabOrder {
		label := t.Label()
		var cell string
		switch {
		case t == nav.TabPublish:
			cell = s.TabPublish.Render("＋ " + label)
		case t == active:
			cell = s.TabOn.Render(label)
		default:
			cell = s.TabOff.Render(label)
		}
		if t == nav.TabMessage && hasUnread {
			cell += s.UnreadDot.Render("●")
		}
		cells = append(cells, cell)
	}

	bar := strings.Join(cells, "   ")
	if width > lipgloss.Width(bar) {
		bar = lipgloss.PlaceHorizontal(width, lipgloss.Center, bar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.RenderDivider(width), bar)
}
