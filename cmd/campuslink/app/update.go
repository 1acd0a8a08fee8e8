package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"campuslink/internal/chat"
	"campuslink/internal/feed"
	"campuslink/internal/logging"
	"campuslink/internal/nav"
	"campuslink/internal/seed"
	"campuslink/internal/session"
)

// Update is the single event loop. Timer messages are checked against their
// sequence counters before they touch state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loggingIn {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginDoneMsg:
		if msg.seq != m.loginSeq || !m.loggingIn {
			return m, nil
		}
		m.loggingIn = false
		m.session.LoginSucceeded()
		m.schoolIndex = 0
		m.schoolSearch.Focus()
		return m, nil

	case autoReplyMsg:
		if msg.seq != m.replySeq {
			return m, nil
		}
		m.inbox.Reply(msg.threadID)
		return m, nil

	case seedReloadedMsg:
		m.applySeed(msg.data)
		if m.watcher == nil {
			return m, nil
		}
		return m, listenReloads(m.watcher.Reloads)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applySeed swaps the data layer under a running shell. Session identity and
// navigation are left alone; list cursors are clamped.
func (m *Model) applySeed(d seed.Data) {
	m.store.Replace(d.Posts)
	m.inbox = chat.NewInbox(d.Threads)
	m.notifications = d.Notifications
	m.schools = d.Schools
	m.searchHistory = d.SearchHistory
	m.resetEngagement()
	m.homeIndex = 0
	m.marketIndex = 0
	m.messageIndex = 0
	m.toast = "数据已重新加载"
	logging.Seed("shell applied reloaded seed data")
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.session.Phase() {
	case session.PhaseLogin:
		return m.handleLoginKey(msg)
	case session.PhaseSchoolSelect:
		return m.handleSchoolKey(msg)
	}

	if _, ok := m.router.Top(); ok {
		return m.handleOverlayKey(msg)
	}
	return m.handleTabKey(msg)
}

// handleTabKey handles keys when no overlay is stacked: tab switching plus
// the active tab's list interactions.
func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.toast = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.switchTab(nav.TabHome)
		return m, nil
	case "2":
		m.switchTab(nav.TabMarket)
		return m, nil
	case "3":
		// Publish is an action: open the composer over the current tab.
		m.openComposer(m.defaultComposerKind())
		return m, nil
	case "4":
		m.switchTab(nav.TabMessage)
		return m, nil
	case "5":
		m.switchTab(nav.TabProfile)
		return m, nil
	}

	switch m.router.Tab() {
	case nav.TabHome:
		return m.handleHomeKey(msg)
	case nav.TabMarket:
		return m.handleMarketKey(msg)
	case nav.TabMessage:
		return m.handleMessageKey(msg)
	case nav.TabProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

// switchTab changes the active tab and drops card-local state, so the new
// screen renders from stored counts.
func (m *Model) switchTab(t nav.Tab) {
	if t == m.router.Tab() {
		return
	}
	m.router.SetTab(t)
	m.resetEngagement()
}

// defaultComposerKind preselects the composer kind from the current context:
// the Market screen seeds a marketplace kind, everywhere else social.
func (m *Model) defaultComposerKind() feed.Kind {
	if m.router.Tab() != nav.TabMarket {
		return feed.KindSocial
	}
	if m.marketView == feed.MarketErrand {
		return feed.KindErrand
	}
	return feed.KindTrade
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := m.visibleHomePosts()

	switch msg.String() {
	case "up", "k":
		if m.homeIndex > 0 {
			m.homeIndex--
		}
	case "down", "j":
		if m.homeIndex < len(posts)-1 {
			m.homeIndex++
		}
	case "left", "h":
		if m.categoryIndex > 0 {
			m.categoryIndex--
			m.homeIndex = 0
			m.resetEngagement()
		}
	case "right", "l":
		if m.categoryIndex < len(feed.HomeCategories)-1 {
			m.categoryIndex++
			m.homeIndex = 0
			m.resetEngagement()
		}
	case "/":
		m.searchInput.SetValue(m.searchText)
		m.searchInput.Focus()
		m.router.Push(nav.Overlay{Kind: nav.OverlaySearch})
	case "esc":
		if m.searchActive {
			m.clearSearch()
		}
	case " ", "space":
		if p, ok := selected(posts, m.homeIndex); ok {
			m.engagementFor(p).Toggle()
		}
	case "s":
		if p, ok := selected(posts, m.homeIndex); ok {
			m.router.Push(nav.Overlay{Kind: nav.OverlayShareSheet, Ref: p.ID})
		}
	case "d":
		if p, ok := selected(posts, m.homeIndex); ok && p.Author.ID == m.session.User().ID {
			m.router.Push(nav.Overlay{Kind: nav.OverlayActionSheet, Ref: p.ID})
		}
	case "e":
		if p, ok := m.featuredEvent(); ok && m.categoryIndex == 0 && !m.searchActive {
			m.router.Push(nav.Overlay{Kind: nav.OverlayEventDetail, Ref: p.ID})
		}
	case "enter":
		if p, ok := selected(posts, m.homeIndex); ok {
			m.router.Push(nav.Overlay{Kind: nav.OverlayPostDetail, Ref: p.ID})
		}
	}
	return m, nil
}

// featuredEvent picks the activity post shown in the recommendation banner.
func (m Model) featuredEvent() (feed.Post, bool) {
	for _, p := range m.store.Posts() {
		if p.Category == "活动" {
			return p, true
		}
	}
	return feed.Post{}, false
}

func (m Model) handleMarketKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	posts := m.visibleMarketPosts()

	switch msg.String() {
	case "up", "k":
		if m.marketIndex > 0 {
			m.marketIndex--
		}
	case "down", "j":
		if m.marketIndex < len(posts)-1 {
			m.marketIndex++
		}
	case "left", "h":
		if m.marketView > feed.MarketAll {
			m.marketView--
			m.marketIndex = 0
			m.resetEngagement()
		}
	case "right", "l":
		if m.marketView < feed.MarketErrand {
			m.marketView++
			m.marketIndex = 0
			m.resetEngagement()
		}
	case " ", "space":
		if p, ok := selected(posts, m.marketIndex); ok {
			m.engagementFor(p).Toggle()
		}
	case "p":
		m.openComposer(m.defaultComposerKind())
	case "enter":
		if p, ok := selected(posts, m.marketIndex); ok {
			m.router.Push(nav.Overlay{Kind: nav.OverlayPostDetail, Ref: p.ID})
		}
	}
	return m, nil
}

// Message center rows: two fixed notification entries, then the threads.
const messageFixedRows = 2

func (m Model) handleMessageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := messageFixedRows + len(m.inbox.Threads())

	switch msg.String() {
	case "up", "k":
		if m.messageIndex > 0 {
			m.messageIndex--
		}
	case "down", "j":
		if m.messageIndex < rows-1 {
			m.messageIndex++
		}
	case "enter":
		switch {
		case m.messageIndex == 0:
			m.router.Push(nav.Overlay{Kind: nav.OverlayMessageDetail, Ref: "likes"})
		case m.messageIndex == 1:
			m.router.Push(nav.Overlay{Kind: nav.OverlayMessageDetail, Ref: "comments"})
		default:
			threads := m.inbox.Threads()
			i := m.messageIndex - messageFixedRows
			if i >= 0 && i < len(threads) {
				t := threads[i]
				m.inbox.MarkRead(t.ID)
				m.chatInput.SetValue("")
				m.chatInput.Focus()
				m.router.Push(nav.Overlay{Kind: nav.OverlayChatDetail, Ref: t.ID})
			}
		}
	}
	return m, nil
}

// Profile menu rows, in display order, mapping to their sub-view refs. Empty
// refs are handled specially (edit, settings, logout).
var profileRows = []struct {
	label string
	ref   string
}{
	{"编辑资料", ""},
	{"我的帖子", "posts"},
	{"我的集市", "trades"},
	{"我的关注", "following"},
	{"我的粉丝", "fans"},
	{"学生认证", "verify"},
	{"举报记录", "reports"},
	{"设置", ""},
	{"退出登录", ""},
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.profileIndex > 0 {
			m.profileIndex--
		}
	case "down", "j":
		if m.profileIndex < len(profileRows)-1 {
			m.profileIndex++
		}
	case "enter":
		row := profileRows[m.profileIndex]
		switch {
		case row.label == "编辑资料":
			m.openEditProfile()
		case row.label == "设置":
			m.settingsIndex = 0
			m.router.Push(nav.Overlay{Kind: nav.OverlaySettings})
		case row.label == "退出登录":
			m.logout()
		default:
			m.subIndex = 0
			m.router.Push(nav.Overlay{Kind: nav.OverlayProfileSub, Ref: row.ref})
		}
	}
	return m, nil
}

// clearSearch leaves search mode and shows the category feed again.
func (m *Model) clearSearch() {
	m.searchActive = false
	m.searchText = ""
	m.searchInput.SetValue("")
	m.homeIndex = 0
	m.resetEngagement()
}

// selected bounds-checks a list cursor.
func selected(posts []feed.Post, i int) (feed.Post, bool) {
	if i < 0 || i >= len(posts) {
		return feed.Post{}, false
	}
	return posts[i], true
}
