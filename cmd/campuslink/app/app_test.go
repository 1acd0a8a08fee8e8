package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuslink/internal/config"
	"campuslink/internal/feed"
	"campuslink/internal/nav"
	"campuslink/internal/seed"
	"campuslink/internal/session"
)

// activeModel returns a model already past the auth flow.
func activeModel(t *testing.T) Model {
	t.Helper()
	m := New(config.DefaultConfig(), seed.Default(), nil)
	m.session.LoginSucceeded()
	m.session.SelectSchool("福建商学院")
	require.Equal(t, session.PhaseActive, m.session.Phase())
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// press runs one key through Update and returns the updated model and cmd.
func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned a foreign model")
	return got, cmd
}

func TestLoginFlow(t *testing.T) {
	m := New(config.DefaultConfig(), seed.Default(), nil)
	require.Equal(t, session.PhaseLogin, m.session.Phase())

	// Submitting with empty fields shows an error.
	m, _ = press(t, m, keyType(tea.KeyEnter))
	assert.NotEmpty(t, m.loginErr)
	assert.False(t, m.loggingIn)

	for _, r := range "13800138000" {
		m, _ = press(t, m, keyRune(r))
	}

	// A phone number alone is not enough.
	m, _ = press(t, m, keyType(tea.KeyEnter))
	assert.NotEmpty(t, m.loginErr)
	assert.False(t, m.loggingIn)

	m, _ = press(t, m, keyType(tea.KeyTab))
	for _, r := range "123456" {
		m, _ = press(t, m, keyRune(r))
	}
	m, cmd := press(t, m, keyType(tea.KeyEnter))
	require.NotNil(t, cmd, "login must schedule the latency timer")
	assert.True(t, m.loggingIn)
	assert.Equal(t, session.PhaseLogin, m.session.Phase(), "phase must not advance before the timer fires")

	// A stale timer from an earlier attempt is ignored.
	m, _ = press(t, m, loginDoneMsg{seq: m.loginSeq - 1})
	assert.Equal(t, session.PhaseLogin, m.session.Phase())

	m, _ = press(t, m, loginDoneMsg{seq: m.loginSeq})
	assert.Equal(t, session.PhaseSchoolSelect, m.session.Phase())

	// Pick the second school.
	m, _ = press(t, m, keyType(tea.KeyDown))
	m, _ = press(t, m, keyType(tea.KeyEnter))
	assert.Equal(t, session.PhaseActive, m.session.Phase())
	assert.Equal(t, "北京大学", m.session.User().School)
}

func TestWeChatLoginSkipsLatency(t *testing.T) {
	m := New(config.DefaultConfig(), seed.Default(), nil)

	// Tab past both inputs onto the WeChat button.
	m, _ = press(t, m, keyType(tea.KeyTab))
	m, _ = press(t, m, keyType(tea.KeyTab))
	m, _ = press(t, m, keyType(tea.KeyEnter))

	assert.False(t, m.loggingIn)
	assert.Equal(t, session.PhaseSchoolSelect, m.session.Phase())
}

func TestSchoolSearchFilters(t *testing.T) {
	m := New(config.DefaultConfig(), seed.Default(), nil)
	m.session.LoginSucceeded()
	m.schoolSearch.Focus()

	for _, r := range "厦门" {
		m, _ = press(t, m, keyRune(r))
	}
	require.Equal(t, []string{"厦门大学"}, m.filteredSchools())

	m, _ = press(t, m, keyType(tea.KeyEnter))
	assert.Equal(t, session.PhaseActive, m.session.Phase())
	assert.Equal(t, "厦门大学", m.session.User().School)
}

func TestPublishSocialJumpsHome(t *testing.T) {
	m := activeModel(t)
	m.router.SetTab(nav.TabMessage)
	before := m.store.Len()

	m, _ = press(t, m, keyRune('3'))
	require.True(t, m.router.Has(nav.OverlayPublish))

	m.composer.body.SetValue("今天天气不错")
	m, _ = press(t, m, keyType(tea.KeyCtrlS))

	assert.Equal(t, before+1, m.store.Len())
	assert.Equal(t, nav.TabHome, m.router.Tab(), "social publish must land on Home")
	assert.Equal(t, 0, m.router.Depth(), "publish must clear the overlay stack")

	p := m.store.Posts()[0]
	assert.Equal(t, "今天天气不错", p.Body)
	assert.Equal(t, "日常", p.Category)
	assert.Equal(t, "刚刚", p.CreatedAt)
	assert.Zero(t, p.LikeCount)
	assert.Equal(t, m.session.User().ID, p.Author.ID)
}

func TestPublishTradeJumpsMarket(t *testing.T) {
	m := activeModel(t)
	m, _ = press(t, m, keyRune('2'))
	require.Equal(t, nav.TabMarket, m.router.Tab())

	// Quick publish from Market preselects a marketplace kind.
	m, _ = press(t, m, keyRune('p'))
	require.True(t, m.router.Has(nav.OverlayPublish))
	assert.Equal(t, feed.KindTrade, m.composer.selectedKind())

	m.composer.body.SetValue("出一个床头灯")
	m.composer.price.SetValue("15")
	m, _ = press(t, m, keyType(tea.KeyCtrlS))

	assert.Equal(t, nav.TabMarket, m.router.Tab())
	p := m.store.Posts()[0]
	assert.Equal(t, feed.KindTrade, p.Kind)
	assert.Equal(t, "其他", p.Category)
	assert.Equal(t, 15.0, p.Price)

	// The new post is visible on the market list.
	assert.Equal(t, p.ID, m.visibleMarketPosts()[0].ID)
}

func TestPublishErrandCarriesDeadline(t *testing.T) {
	m := activeModel(t)
	m, _ = press(t, m, keyRune('2'))
	m, _ = press(t, m, keyType(tea.KeyRight))
	m, _ = press(t, m, keyType(tea.KeyRight))
	require.Equal(t, feed.MarketErrand, m.marketView)

	m, _ = press(t, m, keyRune('p'))
	require.Equal(t, feed.KindErrand, m.composer.selectedKind())

	m.composer.body.SetValue("帮取一个快递")
	m.composer.price.SetValue("5")
	m.composer.deadline.SetValue("今天 18:00 前")
	m, _ = press(t, m, keyType(tea.KeyCtrlS))

	p := m.store.Posts()[0]
	assert.Equal(t, feed.KindErrand, p.Kind)
	assert.Equal(t, "今天 18:00 前", p.Deadline)
	assert.Equal(t, 5.0, p.Price)
}

func TestPublishBlankBodyRejected(t *testing.T) {
	m := activeModel(t)
	before := m.store.Len()

	m, _ = press(t, m, keyRune('3'))
	m.composer.body.SetValue("   ")
	m, _ = press(t, m, keyType(tea.KeyCtrlS))

	assert.Equal(t, before, m.store.Len())
	assert.True(t, m.router.Has(nav.OverlayPublish), "composer stays open on rejection")
	assert.NotEmpty(t, m.composer.errText)
}

func TestDeleteClosesDetail(t *testing.T) {
	m := activeModel(t)

	// me1 belongs to the session user and sits on the Home feed.
	m.router.Push(nav.Overlay{Kind: nav.OverlayPostDetail, Ref: "me1"})
	m, _ = press(t, m, keyRune('d'))
	require.True(t, m.router.Has(nav.OverlayActionSheet))

	m, _ = press(t, m, keyType(tea.KeyEnter))

	_, found := m.store.Get("me1")
	assert.False(t, found)
	assert.Equal(t, 0, m.router.Depth(), "detail and sheet must close with the post")
}

func TestDeleteForeignPostIgnored(t *testing.T) {
	m := activeModel(t)
	m.router.Push(nav.Overlay{Kind: nav.OverlayPostDetail, Ref: "1"})

	m, _ = press(t, m, keyRune('d'))
	assert.False(t, m.router.Has(nav.OverlayActionSheet), "no delete sheet for another user's post")
	_, found := m.store.Get("1")
	assert.True(t, found)
}

func TestSearchFlow(t *testing.T) {
	m := activeModel(t)

	m, _ = press(t, m, keyRune('/'))
	require.True(t, m.router.Has(nav.OverlaySearch))

	for _, r := range "键盘" {
		m, _ = press(t, m, keyRune(r))
	}
	m, _ = press(t, m, keyType(tea.KeyEnter))

	assert.True(t, m.searchActive)
	assert.Equal(t, "键盘", m.searchText)
	assert.Equal(t, 0, m.router.Depth())

	posts := m.visibleHomePosts()
	require.Len(t, posts, 1)
	assert.Equal(t, "m2", posts[0].ID)

	// The query lands at the front of the history chips.
	assert.Equal(t, "键盘", m.searchHistory[0])

	// Esc back on the feed clears search mode.
	m, _ = press(t, m, keyType(tea.KeyEsc))
	assert.False(t, m.searchActive)
	assert.Greater(t, len(m.visibleHomePosts()), 1)
}

func TestLikeIsCardLocal(t *testing.T) {
	m := activeModel(t)
	posts := m.visibleHomePosts()
	stored := posts[0].LikeCount

	m, _ = press(t, m, keyType(tea.KeySpace))
	e := m.engagementFor(posts[0])
	assert.True(t, e.Liked)
	assert.Equal(t, stored+1, e.Count)

	// Leaving and returning to the tab rebuilds the cards from stored counts.
	m, _ = press(t, m, keyRune('4'))
	m, _ = press(t, m, keyRune('1'))
	e = m.engagementFor(posts[0])
	assert.False(t, e.Liked)
	assert.Equal(t, stored, e.Count)
	p, _ := m.store.Get(posts[0].ID)
	assert.Equal(t, stored, p.LikeCount, "stored count must never change")
}

func TestChatAutoReply(t *testing.T) {
	m := activeModel(t)

	// Open the second thread from the message center.
	m, _ = press(t, m, keyRune('4'))
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, keyType(tea.KeyDown))
	}
	m, _ = press(t, m, keyType(tea.KeyEnter))
	top, ok := m.router.Top()
	require.True(t, ok)
	require.Equal(t, nav.OverlayChatDetail, top.Kind)
	threadID := top.Ref

	for _, r := range "还在的" {
		m, _ = press(t, m, keyRune(r))
	}
	m, cmd := press(t, m, keyType(tea.KeyEnter))
	require.NotNil(t, cmd, "send must schedule the reply timer")

	// Close the chat before the reply fires; it must still land by id.
	m, _ = press(t, m, keyType(tea.KeyEsc))
	m, _ = press(t, m, autoReplyMsg{threadID: threadID, seq: m.replySeq})

	th, ok := m.inbox.Thread(threadID)
	require.True(t, ok)
	last := th.History[len(th.History)-1]
	assert.Equal(t, "好的，没问题！👌", last.Text)
	assert.False(t, last.Mine)
}

func TestOpeningThreadMarksRead(t *testing.T) {
	m := activeModel(t)
	require.True(t, m.hasUnread())

	m, _ = press(t, m, keyRune('4'))
	m, _ = press(t, m, keyType(tea.KeyDown))
	m, _ = press(t, m, keyType(tea.KeyDown))
	m, _ = press(t, m, keyType(tea.KeyEnter))

	th, _ := m.inbox.Thread("t1")
	assert.False(t, th.Unread)
	assert.False(t, m.hasUnread())
}

func TestLogoutResetsShell(t *testing.T) {
	m := activeModel(t)
	m.router.SetTab(nav.TabProfile)
	m.router.Push(nav.Overlay{Kind: nav.OverlaySettings})
	replySeq := m.replySeq

	// Walk down to the logout row at the bottom of the menu.
	for i := 0; i < len(settingsRows)-1; i++ {
		m, _ = press(t, m, keyType(tea.KeyDown))
	}
	m, _ = press(t, m, keyType(tea.KeyEnter))

	assert.Equal(t, session.PhaseLogin, m.session.Phase())
	assert.Equal(t, nav.TabHome, m.router.Tab())
	assert.Equal(t, 0, m.router.Depth())

	// Pending reply timers are invalidated by the sequence bump.
	m, _ = press(t, m, autoReplyMsg{threadID: "t2", seq: replySeq})
	th, _ := m.inbox.Thread("t2")
	assert.Len(t, th.History, 1)
}

func TestSettingsSubPage(t *testing.T) {
	m := activeModel(t)
	m.router.SetTab(nav.TabProfile)
	m.router.Push(nav.Overlay{Kind: nav.OverlaySettings})

	// The first row opens the account sub-page.
	m, _ = press(t, m, keyType(tea.KeyEnter))
	top, ok := m.router.Top()
	require.True(t, ok)
	assert.Equal(t, nav.OverlaySettings, top.Kind)
	assert.Equal(t, "account", top.Ref)
	assert.NotEmpty(t, m.View())

	// Esc peels the sub-page, then the menu.
	m, _ = press(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, 1, m.router.Depth())
	m, _ = press(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, 0, m.router.Depth())
}

func TestEventBannerOpensDetail(t *testing.T) {
	m := activeModel(t)

	m, _ = press(t, m, keyRune('e'))
	top, ok := m.router.Top()
	require.True(t, ok)
	assert.Equal(t, nav.OverlayEventDetail, top.Kind)
	p, found := m.store.Get(top.Ref)
	require.True(t, found)
	assert.Equal(t, "活动", p.Category)
}

func TestEditProfile(t *testing.T) {
	m := activeModel(t)
	m.router.SetTab(nav.TabProfile)

	m, _ = press(t, m, keyType(tea.KeyEnter))
	require.True(t, m.router.Has(nav.OverlayEditProfile))

	m.editInputs[0].SetValue("新昵称")
	m.editInputs[1].SetValue("新签名")
	m, _ = press(t, m, keyType(tea.KeyEnter))

	assert.Equal(t, 0, m.router.Depth())
	assert.Equal(t, "新昵称", m.session.User().Name)
	assert.Equal(t, "新签名", m.session.User().Bio)
}

func TestSeedReload(t *testing.T) {
	m := activeModel(t)

	d := seed.Default()
	d.Posts = d.Posts[:2]
	m, _ = press(t, m, seedReloadedMsg{data: d})

	assert.Equal(t, 2, m.store.Len())
	assert.Equal(t, 0, m.homeIndex)
}

func TestViewSmoke(t *testing.T) {
	m := New(config.DefaultConfig(), seed.Default(), nil)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.NotEmpty(t, m.View(), "login view")

	m = activeModel(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	for _, tab := range []rune{'1', '2', '4', '5'} {
		m, _ = press(t, m, keyRune(tab))
		assert.NotEmpty(t, m.View())
	}

	// Every overlay renders.
	overlays := []nav.Overlay{
		{Kind: nav.OverlayPostDetail, Ref: "1"},
		{Kind: nav.OverlayEventDetail, Ref: "1"},
		{Kind: nav.OverlaySearch},
		{Kind: nav.OverlayChatDetail, Ref: "t2"},
		{Kind: nav.OverlaySettings},
		{Kind: nav.OverlaySettings, Ref: "privacy"},
		{Kind: nav.OverlayProfileSub, Ref: "trades"},
		{Kind: nav.OverlayProfileSub, Ref: "following"},
		{Kind: nav.OverlayProfileSub, Ref: "verify"},
		{Kind: nav.OverlayMessageDetail, Ref: "likes"},
		{Kind: nav.OverlayPublish},
		{Kind: nav.OverlayShareSheet, Ref: "1"},
		{Kind: nav.OverlayActionSheet, Ref: "me1"},
	}
	m.openEditProfile()
	assert.NotEmpty(t, m.View(), "edit profile overlay")
	m.router.Pop()
	for _, o := range overlays {
		m.router.Push(o)
		assert.NotEmpty(t, m.View(), "overlay kind %d", o.Kind)
		m.router.Pop()
	}
}
