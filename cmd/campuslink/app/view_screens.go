package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campuslink/cmd/campuslink/ui"
	"campuslink/internal/chat"
	"campuslink/internal/feed"
)

func (m Model) renderHome() string {
	s := m.styles
	w := m.contentWidth()
	posts := m.visibleHomePosts()

	var b strings.Builder
	b.WriteString(m.screenTitle("校友圈", "/ 搜索"))
	b.WriteString("\n")
	b.WriteString(m.renderCategoryRow())
	b.WriteString("\n")

	if banner, ok := m.eventBanner(); ok {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.searchActive {
		b.WriteString(s.Muted.Render(fmt.Sprintf("搜索 “%s” · %s · esc 清除", m.searchText, counter(len(posts), "条结果"))))
		b.WriteString("\n")
	}

	if len(posts) == 0 {
		b.WriteString("\n" + s.Muted.Render("这里空空如也～"))
	}
	for i, p := range posts {
		b.WriteString(ui.RenderPostCard(s, p, ui.CardOptions{
			Width:      w,
			Selected:   i == m.homeIndex,
			Engagement: m.engagementFor(p),
			ShowDelete: p.Author.ID == m.session.User().ID,
		}))
		b.WriteString("\n")
	}

	b.WriteString(m.footerHint("enter 详情 · 空格 点赞 · s 分享 · d 删除 · ←→ 分类"))
	return b.String()
}

// eventBanner promotes the newest activity post on the recommendation feed.
// It is hidden while a search filter is active.
func (m Model) eventBanner() (string, bool) {
	if m.categoryIndex != 0 || m.searchActive {
		return "", false
	}
	p, ok := m.featuredEvent()
	if !ok {
		return "", false
	}
	s := m.styles
	line := s.Badge.Render(" 活动 ") + " " + truncate(p.Body, 24) + "  " + s.Muted.Render("e 查看")
	return s.Card.BorderForeground(s.Theme.Primary).Width(m.contentWidth() - 2).Render(line), true
}

func (m Model) renderCategoryRow() string {
	s := m.styles
	cells := make([]string, len(feed.HomeCategories))
	for i, c := range feed.HomeCategories {
		if i == m.categoryIndex {
			cells[i] = s.CategoryOn.Render(c)
		} else {
			cells[i] = s.CategoryOff.Render(c)
		}
	}
	return strings.Join(cells, "  ")
}

func (m Model) renderMarket() string {
	s := m.styles
	w := m.contentWidth()
	posts := m.visibleMarketPosts()

	var b strings.Builder
	b.WriteString(m.screenTitle("校园集市", "p 快速发布"))
	b.WriteString("\n")

	pills := make([]string, 0, 3)
	for _, v := range []feed.MarketView{feed.MarketAll, feed.MarketTrade, feed.MarketErrand} {
		if v == m.marketView {
			pills = append(pills, s.PillOn.Render(v.Label()))
		} else {
			pills = append(pills, s.PillOff.Render(v.Label()))
		}
	}
	b.WriteString(strings.Join(pills, " "))
	b.WriteString("\n")

	if len(posts) == 0 {
		b.WriteString("\n" + s.Muted.Render("集市暂时没有内容"))
	}
	for i, p := range posts {
		b.WriteString(ui.RenderPostCard(s, p, ui.CardOptions{
			Width:      w,
			Selected:   i == m.marketIndex,
			Engagement: m.engagementFor(p),
			ShowDelete: p.Author.ID == m.session.User().ID,
		}))
		b.WriteString("\n")
	}

	b.WriteString(m.footerHint("enter 详情 · ←→ 筛选 · 空格 点赞"))
	return b.String()
}

func (m Model) renderMessages() string {
	s := m.styles
	likes := chat.FilterNotifications(m.notifications, chat.NotificationLike)
	comments := chat.FilterNotifications(m.notifications, chat.NotificationComment)

	var lines []string
	lines = append(lines, m.screenTitle("消息", ""))

	row := func(i int, label string) string {
		if i == m.messageIndex {
			return s.Title.Render("› " + label)
		}
		return s.Body.Render("  " + label)
	}
	lines = append(lines, row(0, fmt.Sprintf("❤ 收到的赞 (%d)", len(likes))))
	lines = append(lines, row(1, fmt.Sprintf("💬 评论回复 (%d)", len(comments))))
	lines = append(lines, s.RenderDivider(m.contentWidth()))

	for i, t := range m.inbox.Threads() {
		idx := messageFixedRows + i
		label := t.Peer
		if t.Unread {
			label = s.UnreadDot.Render("● ") + label
		}
		preview := t.Preview()
		if lipgloss.Width(preview) > 18 {
			preview = truncate(preview, 18)
		}
		line := fmt.Sprintf("%s  %s", label, s.Muted.Render(preview+" · "+t.LastTime))
		lines = append(lines, row(idx, "")+line)
	}

	lines = append(lines, "", m.footerHint("enter 打开 · ↑↓ 选择"))

	var b strings.Builder
	renderList(&b, lines)
	return b.String()
}

func (m Model) renderProfile() string {
	s := m.styles
	u := m.session.User()

	var lines []string
	lines = append(lines, m.screenTitle("我的", ""))

	name := s.Bold.Render(u.Name)
	if u.Verified {
		name += " " + s.Tag.Render("✓ 学生认证")
	}
	lines = append(lines, name)
	if u.Department != "" || u.School != "" {
		lines = append(lines, s.Muted.Render(strings.TrimSpace(u.School+" "+u.Department)))
	}
	if u.Bio != "" {
		lines = append(lines, s.Muted.Render(u.Bio))
	}

	posts := feed.ByAuthor(m.store.Posts(), u.ID)
	trades := feed.TradesByAuthor(m.store.Posts(), u.ID)
	lines = append(lines, s.Muted.Render(fmt.Sprintf("帖子 %d · 集市 %d", len(posts), len(trades))))
	lines = append(lines, s.RenderDivider(m.contentWidth()))

	for i, row := range profileRows {
		if i == m.profileIndex {
			lines = append(lines, s.Title.Render("› "+row.label))
		} else {
			lines = append(lines, s.Body.Render("  "+row.label))
		}
	}
	lines = append(lines, "", m.footerHint("enter 进入 · ↑↓ 选择"))

	var b strings.Builder
	renderList(&b, lines)
	return b.String()
}

// truncate shortens a string to at most n display cells, appending an
// ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
