package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campuslink/cmd/campuslink/ui"
	"campuslink/internal/nav"
	"campuslink/internal/session"
)

// The shell renders into a phone-ish column regardless of terminal width.
const maxContentWidth = 46

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return maxContentWidth
	}
	if m.width < maxContentWidth {
		return m.width
	}
	return maxContentWidth
}

func (m Model) View() string {
	switch m.session.Phase() {
	case session.PhaseLogin:
		return m.renderLogin()
	case session.PhaseSchoolSelect:
		return m.renderSchoolSelect()
	}
	return m.renderShell()
}

func (m Model) renderLogin() string {
	s := m.styles
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(s.Header.Render(" 校友圈 "))
	b.WriteString("\n\n")
	b.WriteString(s.Title.Render("欢迎回来"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("验证码随便填，这里没有真的后端"))
	b.WriteString("\n\n")
	b.WriteString(s.InputFrame.Render(m.loginPhone.View()))
	b.WriteString("\n")
	b.WriteString(s.InputFrame.Render(m.loginCode.View()))
	b.WriteString("\n\n")

	if m.loggingIn {
		b.WriteString(m.spinner.View() + s.Muted.Render(" 登录中…"))
	} else {
		wechat := s.PillOff.Render("微信一键登录")
		if m.loginFocus == loginFocusWeChat {
			wechat = s.PillOn.Render("微信一键登录")
		}
		b.WriteString(s.Badge.Render(" 登录 ") + "  " + wechat)
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("enter 提交 · tab 切换"))
	}
	if m.loginErr != "" {
		b.WriteString("\n" + s.Error.Render(m.loginErr))
	}

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(w + 4).Render(b.String())
}

func (m Model) renderSchoolSelect() string {
	s := m.styles
	w := m.contentWidth()

	var b strings.Builder
	b.WriteString(s.Header.Render(" 选择你的学校 "))
	b.WriteString("\n\n")
	b.WriteString(s.InputFrame.Render(m.schoolSearch.View()))
	b.WriteString("\n")

	schools := m.filteredSchools()
	if len(schools) == 0 {
		b.WriteString(s.Muted.Render("没有匹配的学校"))
		b.WriteString("\n")
	}
	for i, school := range schools {
		if i == m.schoolIndex {
			b.WriteString(s.Title.Render("› " + school))
		} else {
			b.WriteString(s.Muted.Render("  " + school))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("输入搜索 · enter 确认 · esc 返回登录"))

	return lipgloss.NewStyle().Padding(1, 2).MaxWidth(w + 4).Render(b.String())
}

// renderShell composes the active layer, the toast line and the tab bar.
func (m Model) renderShell() string {
	w := m.contentWidth()

	content := m.renderActiveLayer()

	var parts []string
	parts = append(parts, content)
	if m.toast != "" {
		parts = append(parts, m.styles.Success.Render(m.toast))
	}
	if m.router.TabBarVisible() {
		parts = append(parts, ui.RenderTabBar(m.styles, m.router.Tab(), m.hasUnread(), w))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderActiveLayer renders the topmost full-screen layer, with any bottom
// sheet floated underneath it.
func (m Model) renderActiveLayer() string {
	base := m.renderBaseLayer()

	if top, ok := m.router.Top(); ok {
		switch top.Kind {
		case nav.OverlayShareSheet:
			return lipgloss.JoinVertical(lipgloss.Left, base, m.renderShareSheet())
		case nav.OverlayActionSheet:
			return lipgloss.JoinVertical(lipgloss.Left, base, m.renderActionSheet())
		}
	}
	return base
}

// renderBaseLayer finds the topmost non-sheet layer: an overlay when one is
// stacked, the active tab screen otherwise.
func (m Model) renderBaseLayer() string {
	for i := m.router.Depth() - 1; i >= 0; i-- {
		o := m.overlayAt(i)
		switch o.Kind {
		case nav.OverlayShareSheet, nav.OverlayActionSheet:
			continue
		}
		return m.renderOverlay(o)
	}

	switch m.router.Tab() {
	case nav.TabMarket:
		return m.renderMarket()
	case nav.TabMessage:
		return m.renderMessages()
	case nav.TabProfile:
		return m.renderProfile()
	}
	return m.renderHome()
}

// overlayAt peeks into the stack by popping copies; the router exposes only
// stack-top access, so walk a scratch copy.
func (m Model) overlayAt(i int) nav.Overlay {
	r := m.router
	var o nav.Overlay
	for d := r.Depth() - 1; d >= i; d-- {
		o, _ = r.Pop()
	}
	return o
}

func (m Model) screenTitle(title, hint string) string {
	s := m.styles
	line := s.Header.Render(" " + title + " ")
	if hint != "" {
		line += " " + s.Muted.Render(hint)
	}
	return line
}

func (m Model) footerHint(hint string) string {
	return m.styles.Muted.Render(hint)
}

func renderList(b *strings.Builder, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}

func counter(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, noun)
}
