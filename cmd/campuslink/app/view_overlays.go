package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"campuslink/cmd/campuslink/ui"
	"campuslink/internal/chat"
	"campuslink/internal/feed"
	"campuslink/internal/nav"
)

func (m Model) renderOverlay(o nav.Overlay) string {
	switch o.Kind {
	case nav.OverlayPostDetail:
		return m.renderPostDetail(o)
	case nav.OverlayEventDetail:
		return m.renderEventDetail(o)
	case nav.OverlaySearch:
		return m.renderSearch()
	case nav.OverlayChatDetail:
		return m.renderChatDetail(o)
	case nav.OverlayEditProfile:
		return m.renderEditProfile()
	case nav.OverlaySettings:
		return m.renderSettings(o)
	case nav.OverlayProfileSub:
		return m.renderProfileSub(o)
	case nav.OverlayMessageDetail:
		return m.renderMessageDetail(o)
	case nav.OverlayPublish:
		return m.renderComposer()
	}
	return ""
}

func (m Model) renderPostDetail(o nav.Overlay) string {
	s := m.styles
	p, ok := m.store.Get(o.Ref)
	if !ok {
		return s.Muted.Render("帖子不存在")
	}

	var b strings.Builder
	b.WriteString(m.screenTitle("帖子详情", "esc 返回"))
	b.WriteString("\n")
	b.WriteString(ui.RenderPostCard(s, p, ui.CardOptions{
		Width:      m.contentWidth(),
		Engagement: m.engagementFor(p),
		ShowDelete: p.Author.ID == m.session.User().ID,
	}))
	b.WriteString("\n")
	if p.ViewCount > 0 {
		b.WriteString(s.Muted.Render(ui.FormatViewCount(p.ViewCount)))
		b.WriteString("\n")
	}

	hints := []string{"空格 点赞", "s 分享"}
	if p.Author.ID == m.session.User().ID {
		hints = append(hints, "d 删除")
	}
	if p.Category == "活动" {
		hints = append(hints, "e 活动页")
	}
	b.WriteString(m.footerHint(strings.Join(hints, " · ")))
	return b.String()
}

// renderEventDetail renders an activity post as a markdown page.
func (m Model) renderEventDetail(o nav.Overlay) string {
	s := m.styles
	p, ok := m.store.Get(o.Ref)
	if !ok {
		return s.Muted.Render("活动不存在")
	}

	md := fmt.Sprintf("# 校园活动\n\n%s\n\n---\n\n- 发布者：%s\n- 时间：%s\n- 热度：%d 赞 · %d 评论\n",
		p.Body, p.DisplayName(), p.CreatedAt, p.LikeCount, p.CommentCount)

	return m.screenTitle("活动详情", "esc 返回") + "\n" + m.renderMarkdown(md)
}

// renderMarkdown renders markdown with panic recovery; glamour can choke on
// odd input, and a detail page is not worth crashing the shell.
func (m Model) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.contentWidth()),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

func (m Model) renderSearch() string {
	s := m.styles

	var b strings.Builder
	b.WriteString(m.screenTitle("搜索", "esc 取消"))
	b.WriteString("\n")
	b.WriteString(s.InputFrame.Render(m.searchInput.View()))
	b.WriteString("\n\n")

	if len(m.searchHistory) > 0 {
		b.WriteString(s.Muted.Render("搜索历史"))
		b.WriteString("\n")
		chips := make([]string, len(m.searchHistory))
		for i, h := range m.searchHistory {
			chips[i] = s.PillOff.Render(h)
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footerHint("enter 搜索 · ↓ 历史记录"))
	return b.String()
}

func (m Model) renderChatDetail(o nav.Overlay) string {
	s := m.styles
	t, ok := m.inbox.Thread(o.Ref)
	if !ok {
		return s.Muted.Render("会话不存在")
	}

	var b strings.Builder
	b.WriteString(m.screenTitle(t.Peer, "esc 返回"))
	b.WriteString("\n")

	for _, msg := range t.History {
		if msg.Mine {
			b.WriteString("  " + s.BubbleMine.Render(msg.Text))
		} else {
			b.WriteString(s.BubbleTheir.Render(msg.Text))
		}
		b.WriteString(" " + s.Muted.Render(msg.Time))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.InputFrame.Render(m.chatInput.View()))
	b.WriteString("\n")
	b.WriteString(m.footerHint("enter 发送"))
	return b.String()
}

func (m Model) renderEditProfile() string {
	s := m.styles
	labels := []string{"昵称", "个性签名", "院系"}

	var b strings.Builder
	b.WriteString(m.screenTitle("编辑资料", "esc 取消"))
	b.WriteString("\n")
	for i, in := range m.editInputs {
		b.WriteString(s.Muted.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(s.InputFrame.Render(in.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footerHint("enter 保存 · tab 切换"))
	return b.String()
}

func (m Model) renderSettings(o nav.Overlay) string {
	if o.Ref != "" {
		return m.renderSettingsPage(o.Ref)
	}
	s := m.styles

	var b strings.Builder
	b.WriteString(m.screenTitle("设置", "esc 返回"))
	b.WriteString("\n")
	for i, row := range settingsRows {
		if i == m.settingsIndex {
			b.WriteString(s.Title.Render("› " + row.label))
		} else {
			b.WriteString(s.Body.Render("  " + row.label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footerHint("enter 确认 · ↑↓ 选择"))
	return b.String()
}

// renderSettingsPage renders a read-only settings sub-page.
func (m Model) renderSettingsPage(ref string) string {
	s := m.styles
	u := m.session.User()

	var title string
	var lines []string
	switch ref {
	case "account":
		title = "账号与安全"
		phone := strings.TrimSpace(m.loginPhone.Value())
		if phone == "" {
			phone = "未绑定"
		}
		lines = []string{
			s.Body.Render("手机号  " + phone),
			s.Body.Render("学校    " + u.School),
			s.Muted.Render("修改密码、注销账号等功能开发中"),
		}
	case "notify":
		title = "通知设置"
		lines = []string{
			s.Body.Render("点赞通知    开"),
			s.Body.Render("评论通知    开"),
			s.Body.Render("私信通知    开"),
		}
	case "privacy":
		title = "隐私设置"
		lines = []string{
			s.Body.Render("谁可以看我的帖子    同校同学"),
			s.Body.Render("允许陌生人私信      开"),
		}
	case "blocklist":
		title = "黑名单"
		lines = []string{s.Muted.Render("黑名单是空的")}
	default:
		title = "设置"
	}

	var b strings.Builder
	b.WriteString(m.screenTitle(title, "esc 返回"))
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderProfileSub(o nav.Overlay) string {
	s := m.styles

	switch o.Ref {
	case "following":
		return m.renderProfileInfoPage("我的关注", s.Muted.Render("还没有关注任何人"))
	case "fans":
		return m.renderProfileInfoPage("我的粉丝", s.Muted.Render("还没有粉丝，多发帖子吧"))
	case "verify":
		status := s.Error.Render("未认证 · 上传学生证后开通")
		if m.session.User().Verified {
			status = s.Success.Render("✓ 已通过学生认证")
		}
		return m.renderProfileInfoPage("学生认证", status)
	case "reports":
		return m.renderProfileInfoPage("举报记录", s.Muted.Render("没有举报记录"))
	}

	title := "我的帖子"
	if o.Ref == "trades" {
		title = "我的集市"
	}
	posts := m.profileSubPosts(o.Ref)

	var b strings.Builder
	b.WriteString(m.screenTitle(title, "esc 返回"))
	b.WriteString("\n")
	if len(posts) == 0 {
		b.WriteString(s.Muted.Render("还没有内容，去发布一条吧"))
		b.WriteString("\n")
	}
	for i, p := range posts {
		b.WriteString(ui.RenderPostCard(s, p, ui.CardOptions{
			Width:      m.contentWidth(),
			Selected:   i == m.subIndex,
			ShowDelete: true,
		}))
		b.WriteString("\n")
	}
	b.WriteString(m.footerHint("enter 详情 · d 删除"))
	return b.String()
}

// renderProfileInfoPage renders a one-line profile sub-page.
func (m Model) renderProfileInfoPage(title, body string) string {
	var b strings.Builder
	b.WriteString(m.screenTitle(title, "esc 返回"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderMessageDetail(o nav.Overlay) string {
	s := m.styles

	title := "收到的赞"
	kind := chat.NotificationLike
	if o.Ref == "comments" {
		title = "评论回复"
		kind = chat.NotificationComment
	}
	items := chat.FilterNotifications(m.notifications, kind)

	var b strings.Builder
	b.WriteString(m.screenTitle(title, "esc 返回"))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(s.Muted.Render("暂时没有新消息"))
		b.WriteString("\n")
	}
	for _, n := range items {
		line := s.Bold.Render(n.UserName)
		if kind == chat.NotificationLike {
			line += s.Muted.Render(" 赞了你的帖子")
		} else {
			line += s.Muted.Render(" 回复：") + s.Body.Render(n.Content)
		}
		line += " " + s.Muted.Render(n.Timestamp)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderComposer() string {
	s := m.styles
	c := m.composer

	focusMark := func(f int, label string) string {
		if c.focus == f {
			return s.Title.Render("› " + label)
		}
		return s.Muted.Render("  " + label)
	}

	var b strings.Builder
	b.WriteString(m.screenTitle("发布", "esc 取消 · ctrl+s 发布"))
	b.WriteString("\n")

	b.WriteString(focusMark(composerFocusKind, "类型"))
	b.WriteString("  ")
	kinds := make([]string, len(c.kinds))
	for i, k := range c.kinds {
		if i == c.kindIndex {
			kinds[i] = s.PillOn.Render(k.Label())
		} else {
			kinds[i] = s.PillOff.Render(k.Label())
		}
	}
	b.WriteString(strings.Join(kinds, " "))
	b.WriteString("\n\n")

	b.WriteString(focusMark(composerFocusBody, "内容"))
	b.WriteString("\n")
	b.WriteString(s.InputFrame.Render(c.body.View()))
	b.WriteString("\n")

	if c.selectedKind().IsMarket() {
		b.WriteString(focusMark(composerFocusPrice, "价格"))
		b.WriteString("\n")
		b.WriteString(s.InputFrame.Render(c.price.View()))
		b.WriteString("\n")
	}

	if c.selectedKind() == feed.KindErrand {
		b.WriteString(focusMark(composerFocusDeadline, "截止时间"))
		b.WriteString("\n")
		b.WriteString(s.InputFrame.Render(c.deadline.View()))
		b.WriteString("\n")
	}

	b.WriteString(focusMark(composerFocusCategory, "分类"))
	b.WriteString("\n")
	b.WriteString(s.InputFrame.Render(c.category.View()))
	b.WriteString("\n")

	anon := "匿名发布：关"
	if c.anonymous {
		anon = "匿名发布：开"
	}
	b.WriteString(focusMark(composerFocusAnonymous, anon))
	b.WriteString("\n")

	if c.errText != "" {
		b.WriteString(s.Error.Render(c.errText))
		b.WriteString("\n")
	}
	b.WriteString(m.footerHint("tab 切换字段"))
	return b.String()
}

func (m Model) renderShareSheet() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Bold.Render("分享到"))
	b.WriteString("\n")
	b.WriteString(s.Body.Render("  复制链接"))
	b.WriteString("\n")
	b.WriteString(m.footerHint("enter 复制 · esc 取消"))
	return s.Card.BorderForeground(s.Theme.Primary).Render(b.String())
}

func (m Model) renderActionSheet() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.Bold.Render("删除这条帖子？"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("删除后无法恢复"))
	b.WriteString("\n")
	b.WriteString(s.Error.Render("  enter 删除") + s.Muted.Render(" · esc 取消"))
	return s.Card.BorderForeground(ui.Destructive).Render(b.String())
}
