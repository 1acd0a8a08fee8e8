package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"campuslink/internal/feed"
	"campuslink/internal/logging"
	"campuslink/internal/nav"
	"campuslink/internal/session"
)

// handleOverlayKey routes keys to the topmost overlay.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	top, ok := m.router.Top()
	if !ok {
		return m, nil
	}

	switch top.Kind {
	case nav.OverlayPostDetail:
		return m.handlePostDetailKey(msg, top)
	case nav.OverlayEventDetail, nav.OverlayMessageDetail:
		if msg.String() == "esc" {
			m.router.Pop()
		}
		return m, nil
	case nav.OverlayShareSheet:
		return m.handleShareSheetKey(msg, top)
	case nav.OverlayActionSheet:
		return m.handleActionSheetKey(msg, top)
	case nav.OverlaySearch:
		return m.handleSearchKey(msg)
	case nav.OverlayChatDetail:
		return m.handleChatKey(msg, top)
	case nav.OverlayEditProfile:
		return m.handleEditProfileKey(msg)
	case nav.OverlaySettings:
		return m.handleSettingsKey(msg, top)
	case nav.OverlayProfileSub:
		return m.handleProfileSubKey(msg, top)
	case nav.OverlayPublish:
		return m.handleComposerKey(msg)
	}
	return m, nil
}

func (m Model) handlePostDetailKey(msg tea.KeyMsg, top nav.Overlay) (tea.Model, tea.Cmd) {
	p, ok := m.store.Get(top.Ref)
	if !ok {
		m.router.Pop()
		return m, nil
	}

	switch msg.String() {
	case "esc", "backspace":
		m.router.Pop()
	case " ", "space":
		m.engagementFor(p).Toggle()
	case "s":
		m.router.Push(nav.Overlay{Kind: nav.OverlayShareSheet, Ref: p.ID})
	case "d":
		if p.Author.ID == m.session.User().ID {
			m.router.Push(nav.Overlay{Kind: nav.OverlayActionSheet, Ref: p.ID})
		}
	case "e":
		if p.Category == "活动" {
			m.router.Push(nav.Overlay{Kind: nav.OverlayEventDetail, Ref: p.ID})
		}
	}
	return m, nil
}

func (m Model) handleShareSheetKey(msg tea.KeyMsg, top nav.Overlay) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.router.Pop()
	case "enter":
		m.router.Pop()
		m.toast = "链接已复制"
		logging.UI("share link copied for post %s", top.Ref)
	}
	return m, nil
}

// handleActionSheetKey confirms post deletion. Removing the post also closes
// every overlay that references it, detail view included.
func (m Model) handleActionSheetKey(msg tea.KeyMsg, top nav.Overlay) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.router.Pop()
	case "enter", "d":
		if m.store.Remove(top.Ref) {
			m.router.CloseRef(top.Ref)
			m.clampCursors()
			m.toast = "已删除"
		} else {
			m.router.Pop()
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.router.Pop()
		m.clearSearch()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.router.Pop()
		if text == "" {
			m.clearSearch()
			return m, nil
		}
		m.searchActive = true
		m.searchText = text
		m.homeIndex = 0
		m.resetEngagement()
		m.rememberSearch(text)
		return m, nil

	case "down":
		// Cycle through the history chips.
		if len(m.searchHistory) > 0 {
			cur := m.searchInput.Value()
			next := 0
			for i, h := range m.searchHistory {
				if h == cur {
					next = (i + 1) % len(m.searchHistory)
					break
				}
			}
			m.searchInput.SetValue(m.searchHistory[next])
			m.searchInput.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// rememberSearch moves a query to the front of the history chips.
func (m *Model) rememberSearch(text string) {
	hist := []string{text}
	for _, h := range m.searchHistory {
		if h != text {
			hist = append(hist, h)
		}
	}
	if len(hist) > 8 {
		hist = hist[:8]
	}
	m.searchHistory = hist
}

func (m Model) handleChatKey(msg tea.KeyMsg, top nav.Overlay) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.chatInput.Blur()
		m.router.Pop()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.chatInput.Value())
		if text == "" {
			return m, nil
		}
		if _, ok := m.inbox.Send(top.Ref, text); !ok {
			return m, nil
		}
		m.chatInput.SetValue("")
		return m, scheduleReply(m.cfg.ReplyDelay(), top.Ref, m.replySeq)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

// openEditProfile seeds the edit form from the current user.
func (m *Model) openEditProfile() {
	u := m.session.User()

	name := textinput.New()
	name.Placeholder = "昵称"
	name.CharLimit = 20
	name.SetValue(u.Name)
	name.Focus()

	bio := textinput.New()
	bio.Placeholder = "个性签名"
	bio.CharLimit = 60
	bio.SetValue(u.Bio)

	dept := textinput.New()
	dept.Placeholder = "院系"
	dept.CharLimit = 30
	dept.SetValue(u.Department)

	m.editInputs = []textinput.Model{name, bio, dept}
	m.editFocus = 0
	m.router.Push(nav.Overlay{Kind: nav.OverlayEditProfile})
}

func (m Model) handleEditProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.router.Pop()
		return m, nil

	case "tab", "down":
		m.setEditFocus((m.editFocus + 1) % len(m.editInputs))
		return m, nil

	case "shift+tab", "up":
		m.setEditFocus((m.editFocus + len(m.editInputs) - 1) % len(m.editInputs))
		return m, nil

	case "enter", "ctrl+s":
		m.session.ApplyEdit(session.ProfileEdit{
			Name:       strings.TrimSpace(m.editInputs[0].Value()),
			Bio:        strings.TrimSpace(m.editInputs[1].Value()),
			Department: strings.TrimSpace(m.editInputs[2].Value()),
		})
		m.router.Pop()
		m.toast = "资料已更新"
		return m, nil
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	return m, cmd
}

func (m *Model) setEditFocus(i int) {
	m.editInputs[m.editFocus].Blur()
	m.editFocus = i
	m.editInputs[m.editFocus].Focus()
}

// Settings rows, in display order. Rows with a ref open a sub-page.
var settingsRows = []struct {
	label string
	ref   string
}{
	{"账号与安全", "account"},
	{"通知设置", "notify"},
	{"隐私设置", "privacy"},
	{"黑名单", "blocklist"},
	{"清除缓存", ""},
	{"关于校友圈", ""},
	{"退出登录", ""},
}

// handleSettingsKey drives both the settings menu and its sub-pages; the
// overlay ref distinguishes them.
func (m Model) handleSettingsKey(msg tea.KeyMsg, top nav.Overlay) (tea.Model, tea.Cmd) {
	if top.Ref != "" {
		if msg.String() == "esc" {
			m.router.Pop()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.router.Pop()
	case "up", "k":
		if m.settingsIndex > 0 {
			m.settingsIndex--
		}
	case "down", "j":
		if m.settingsIndex < len(settingsRows)-1 {
			m.settingsIndex++
		}
	case "enter":
		row := settingsRows[m.settingsIndex]
		switch {
		case row.ref != "":
			m.router.Push(nav.Overlay{Kind: nav.OverlaySettings, Ref: row.ref})
		case row.label == "清除缓存":
			m.toast = "缓存已清除"
			m.router.Pop()
		case row.label == "关于校友圈":
			m.toast = m.cfg.Name + " v" + m.cfg.Version
			m.router.Pop()
		case row.label == "退出登录":
			m.logout()
		}
	}
	return m, nil
}

func (m Model) handleProfileSubKey(msg tea.KeyMsg, top nav.Overlay) (tea.Model, tea.Cmd) {
	switch top.Ref {
	case "following", "fans", "verify", "reports":
		// Informational pages with no list to drive.
		if msg.String() == "esc" {
			m.router.Pop()
		}
		return m, nil
	}

	posts := m.profileSubPosts(top.Ref)

	switch msg.String() {
	case "esc":
		m.router.Pop()
	case "up", "k":
		if m.subIndex > 0 {
			m.subIndex--
		}
	case "down", "j":
		if m.subIndex < len(posts)-1 {
			m.subIndex++
		}
	case "enter":
		if p, ok := selected(posts, m.subIndex); ok {
			m.router.Push(nav.Overlay{Kind: nav.OverlayPostDetail, Ref: p.ID})
		}
	case "d":
		if p, ok := selected(posts, m.subIndex); ok {
			if m.store.Remove(p.ID) {
				m.router.CloseRef(p.ID)
				m.clampCursors()
				m.toast = "已删除"
			}
		}
	}
	return m, nil
}

// profileSubPosts resolves a profile sub-view ref to its post list.
func (m *Model) profileSubPosts(ref string) []feed.Post {
	userID := m.session.User().ID
	if ref == "trades" {
		return feed.TradesByAuthor(m.store.Posts(), userID)
	}
	return feed.ByAuthor(m.store.Posts(), userID)
}

// clampCursors pulls every list cursor back into range after a removal.
func (m *Model) clampCursors() {
	clamp := func(i, n int) int {
		if n == 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	m.homeIndex = clamp(m.homeIndex, len(m.visibleHomePosts()))
	m.marketIndex = clamp(m.marketIndex, len(m.visibleMarketPosts()))
	if top, ok := m.router.Top(); ok && top.Kind == nav.OverlayProfileSub {
		m.subIndex = clamp(m.subIndex, len(m.profileSubPosts(top.Ref)))
	}
}
