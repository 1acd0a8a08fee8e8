// Package app is the interactive campuslink shell. It owns all mutable state
// in a single Bubble Tea model and is split across files:
//   - model.go: model type and construction (this file)
//   - messages.go: typed messages for timers and intents
//   - update.go: the Update loop and tab-level key handling
//   - keys_auth.go: login and school-select key handling
//   - keys_overlay.go: key handling for stacked overlays
//   - composer.go: the publish composer state machine
//   - view.go: top-level rendering
//   - view_screens.go: per-tab screen rendering
//   - view_overlays.go: overlay rendering
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"campuslink/cmd/campuslink/ui"
	"campuslink/internal/chat"
	"campuslink/internal/config"
	"campuslink/internal/feed"
	"campuslink/internal/logging"
	"campuslink/internal/nav"
	"campuslink/internal/seed"
	"campuslink/internal/session"
)

// Model is the root of the shell. Every screen reads from it and every event
// mutates it through Update; nothing else holds state.
type Model struct {
	cfg    *config.Config
	styles ui.Styles

	session *session.Session
	store   *feed.Store
	inbox   *chat.Inbox
	router  nav.Router

	notifications []chat.Notification
	schools       []string
	searchHistory []string

	width  int
	height int

	// Auth screens
	spinner      spinner.Model
	loginPhone   textinput.Model
	loginCode    textinput.Model
	loginFocus   int
	loggingIn    bool
	loginErr     string
	loginSeq     int
	schoolIndex  int
	schoolSearch textinput.Model

	// Home
	categoryIndex int
	homeIndex     int
	searchInput   textinput.Model
	searchActive  bool
	searchText    string

	// Per-card optimistic like state, keyed by post id. Dropped whenever the
	// visible list is rebuilt, so re-rendered cards fall back to the stored
	// counts.
	engagement map[string]*feed.CardEngagement

	// Market
	marketView  feed.MarketView
	marketIndex int

	// Messages
	messageIndex int
	chatInput    textinput.Model
	replySeq     int

	// Profile
	profileIndex  int
	settingsIndex int
	editInputs    []textinput.Model
	editFocus     int
	subIndex      int

	// Publish
	composer composer

	// Seed hot reload (dev mode); nil when disabled.
	watcher *seed.Watcher

	toast string
}

// composer is the publish form state.
type composer struct {
	kinds     []feed.Kind
	kindIndex int
	body      textarea.Model
	price     textinput.Model
	deadline  textinput.Model
	category  textinput.Model
	anonymous bool
	focus     int
	errText   string
}

const (
	composerFocusKind = iota
	composerFocusBody
	composerFocusPrice
	composerFocusDeadline
	composerFocusCategory
	composerFocusAnonymous
	composerFocusCount
)

// New builds the shell model from config and seed data.
func New(cfg *config.Config, data seed.Data, watcher *seed.Watcher) Model {
	styles := ui.NewStyles(ui.ThemeFromName(cfg.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	phone := textinput.New()
	phone.Placeholder = "手机号"
	phone.CharLimit = 11
	phone.Focus()

	code := textinput.New()
	code.Placeholder = "验证码"
	code.CharLimit = 6
	code.EchoMode = textinput.EchoPassword

	search := textinput.New()
	search.Placeholder = "搜索帖子、话题"

	schoolSearch := textinput.New()
	schoolSearch.Placeholder = "搜索学校"
	schoolSearch.CharLimit = 20

	chatInput := textinput.New()
	chatInput.Placeholder = "发消息…"
	chatInput.CharLimit = 200

	m := Model{
		cfg:           cfg,
		styles:        styles,
		session:       session.New(data.User),
		store:         feed.NewStore(data.Posts),
		inbox:         chat.NewInbox(data.Threads),
		notifications: data.Notifications,
		schools:       data.Schools,
		searchHistory: data.SearchHistory,
		spinner:       sp,
		loginPhone:    phone,
		loginCode:     code,
		schoolSearch:  schoolSearch,
		searchInput:   search,
		chatInput:     chatInput,
		engagement:    map[string]*feed.CardEngagement{},
		watcher:       watcher,
	}
	m.resetComposer(feed.KindSocial)
	return m
}

// Init starts the seed reload listener when a watcher is attached.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return listenReloads(m.watcher.Reloads)
}

// resetComposer clears the publish form, preselecting a kind.
func (m *Model) resetComposer(kind feed.Kind) {
	body := textarea.New()
	body.Placeholder = "分享新鲜事…"
	body.CharLimit = 500
	body.SetWidth(40)
	body.SetHeight(4)

	price := textinput.New()
	price.Placeholder = "价格 (元)"
	price.CharLimit = 8

	deadline := textinput.New()
	deadline.Placeholder = "截止时间 (如: 今天 12:00 前)"
	deadline.CharLimit = 20

	category := textinput.New()
	category.Placeholder = "分类 (可选)"
	category.CharLimit = 12

	kinds := []feed.Kind{feed.KindSocial, feed.KindLostFound, feed.KindTrade, feed.KindErrand}
	kindIndex := 0
	for i, k := range kinds {
		if k == kind {
			kindIndex = i
		}
	}

	m.composer = composer{
		kinds:     kinds,
		kindIndex: kindIndex,
		body:      body,
		price:     price,
		deadline:  deadline,
		category:  category,
		focus:     composerFocusBody,
	}
	m.composer.body.Focus()
}

// resetEngagement drops every card-local like counter. Called whenever the
// visible list is rebuilt.
func (m *Model) resetEngagement() {
	m.engagement = map[string]*feed.CardEngagement{}
}

// engagementFor returns the card-local like state for a post, creating it on
// first render.
func (m *Model) engagementFor(p feed.Post) *feed.CardEngagement {
	if e, ok := m.engagement[p.ID]; ok {
		return e
	}
	e := feed.NewCardEngagement(p)
	m.engagement[p.ID] = &e
	return &e
}

// visibleHomePosts applies the category and search state to the store.
func (m *Model) visibleHomePosts() []feed.Post {
	category := feed.HomeCategories[m.categoryIndex]
	return feed.Filter(m.store.Posts(), category, m.searchText, m.searchActive)
}

// visibleMarketPosts applies the market selector to the store.
func (m *Model) visibleMarketPosts() []feed.Post {
	return feed.MarketFilter(m.store.Posts(), m.marketView)
}

// hasUnread reports whether any inbox thread carries an unread badge.
func (m *Model) hasUnread() bool {
	for _, t := range m.inbox.Threads() {
		if t.Unread {
			return true
		}
	}
	return false
}

// logout resets the auth phase and all navigation state. Pending timers are
// invalidated by bumping their sequence counters.
func (m *Model) logout() {
	m.session.Logout()
	m.router.Reset()
	m.resetEngagement()
	m.searchActive = false
	m.searchText = ""
	m.searchInput.SetValue("")
	m.categoryIndex = 0
	m.homeIndex = 0
	m.marketView = feed.MarketAll
	m.marketIndex = 0
	m.messageIndex = 0
	m.profileIndex = 0
	m.settingsIndex = 0
	m.subIndex = 0
	m.loggingIn = false
	m.loginSeq++
	m.replySeq++
	m.loginPhone.Focus()
	m.loginCode.Blur()
	m.loginFocus = loginFocusPhone
	m.schoolSearch.SetValue("")
	m.schoolIndex = 0
	m.toast = ""
	logging.Session("shell state cleared on logout")
}
