package app

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"campuslink/internal/feed"
	"campuslink/internal/logging"
	"campuslink/internal/nav"
)

// openComposer resets the publish form and stacks it over the current tab.
func (m *Model) openComposer(kind feed.Kind) {
	m.resetComposer(kind)
	m.router.Push(nav.Overlay{Kind: nav.OverlayPublish})
}

// handleComposerKey drives the publish form. Ctrl+S submits from anywhere;
// tab cycles the focusable fields, skipping the ones the selected kind does
// not use.
func (m Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.composer

	switch msg.String() {
	case "esc":
		m.router.Pop()
		return m, nil

	case "ctrl+s":
		return m.submitComposer()

	case "tab":
		m.cycleComposerFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleComposerFocus(-1)
		return m, nil
	}

	switch c.focus {
	case composerFocusKind:
		switch msg.String() {
		case "left", "h":
			if c.kindIndex > 0 {
				c.kindIndex--
			}
		case "right", "l":
			if c.kindIndex < len(c.kinds)-1 {
				c.kindIndex++
			}
		}
		return m, nil

	case composerFocusAnonymous:
		switch msg.String() {
		case " ", "space", "enter":
			c.anonymous = !c.anonymous
		}
		return m, nil

	case composerFocusBody:
		var cmd tea.Cmd
		c.body, cmd = c.body.Update(msg)
		return m, cmd

	case composerFocusPrice:
		var cmd tea.Cmd
		c.price, cmd = c.price.Update(msg)
		return m, cmd

	case composerFocusDeadline:
		var cmd tea.Cmd
		c.deadline, cmd = c.deadline.Update(msg)
		return m, cmd

	case composerFocusCategory:
		var cmd tea.Cmd
		c.category, cmd = c.category.Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectedKind returns the composer's current kind.
func (c *composer) selectedKind() feed.Kind {
	return c.kinds[c.kindIndex]
}

// cycleComposerFocus moves focus, skipping the fields the selected kind does
// not use: price for non-market kinds, deadline for everything but errands.
func (m *Model) cycleComposerFocus(dir int) {
	c := &m.composer
	c.body.Blur()
	c.price.Blur()
	c.deadline.Blur()
	c.category.Blur()

	for {
		c.focus = (c.focus + dir + composerFocusCount) % composerFocusCount
		if c.focus == composerFocusPrice && !c.selectedKind().IsMarket() {
			continue
		}
		if c.focus == composerFocusDeadline && c.selectedKind() != feed.KindErrand {
			continue
		}
		break
	}

	switch c.focus {
	case composerFocusBody:
		c.body.Focus()
	case composerFocusPrice:
		c.price.Focus()
	case composerFocusDeadline:
		c.deadline.Focus()
	case composerFocusCategory:
		c.category.Focus()
	}
}

// submitComposer validates the draft and, on success, publishes it and jumps
// to the tab where the new post is visible: Market for marketplace kinds,
// Home otherwise. The overlay stack is cleared either way the jump goes.
func (m Model) submitComposer() (tea.Model, tea.Cmd) {
	c := &m.composer

	draft := feed.Draft{
		Kind:        c.selectedKind(),
		Body:        c.body.Value(),
		Category:    strings.TrimSpace(c.category.Value()),
		IsAnonymous: c.anonymous,
	}
	if draft.Kind.IsMarket() {
		if v, err := strconv.ParseFloat(strings.TrimSpace(c.price.Value()), 64); err == nil && v > 0 {
			draft.Price = v
		}
	}
	if draft.Kind == feed.KindErrand {
		draft.Deadline = strings.TrimSpace(c.deadline.Value())
	}

	post, err := m.store.Publish(draft, m.session.User().AuthorSnapshot())
	if err != nil {
		c.errText = "内容不能为空"
		logging.Feed("publish rejected: %v", err)
		return m, nil
	}

	m.router.Clear()
	if post.Kind.IsMarket() {
		m.router.SetTab(nav.TabMarket)
		m.marketView = feed.MarketAll
		m.marketIndex = 0
	} else {
		m.router.SetTab(nav.TabHome)
		m.categoryIndex = 0
		m.homeIndex = 0
	}
	m.clearSearch()
	m.resetEngagement()
	m.toast = "发布成功"
	return m, nil
}
