package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"campuslink/internal/logging"
)

// Login focus positions: the two inputs plus the WeChat shortcut button.
const (
	loginFocusPhone = iota
	loginFocusCode
	loginFocusWeChat
	loginFocusCount
)

// handleLoginKey drives the login screen. Any phone/code pair is accepted;
// submitting starts the simulated latency timer. The WeChat button skips the
// latency entirely.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		// Input is frozen while the spinner runs.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.setLoginFocus((m.loginFocus + 1) % loginFocusCount)
		return m, nil

	case "shift+tab", "up":
		m.setLoginFocus((m.loginFocus + loginFocusCount - 1) % loginFocusCount)
		return m, nil

	case "enter":
		if m.loginFocus == loginFocusWeChat {
			// Third-party login has no code step.
			m.loginErr = ""
			m.session.LoginSucceeded()
			m.schoolIndex = 0
			m.schoolSearch.Focus()
			logging.Session("wechat login, skipping latency")
			return m, nil
		}
		if m.loginPhone.Value() == "" || m.loginCode.Value() == "" {
			m.loginErr = "请输入手机号和验证码"
			return m, nil
		}
		m.loginErr = ""
		m.loggingIn = true
		m.loginSeq++
		logging.Session("login submitted, waiting %s", m.cfg.LoginDelay())
		return m, tea.Batch(
			m.spinner.Tick,
			scheduleLogin(m.cfg.LoginDelay(), m.loginSeq),
		)
	}

	var cmd tea.Cmd
	switch m.loginFocus {
	case loginFocusPhone:
		m.loginPhone, cmd = m.loginPhone.Update(msg)
	case loginFocusCode:
		m.loginCode, cmd = m.loginCode.Update(msg)
	}
	return m, cmd
}

func (m *Model) setLoginFocus(i int) {
	m.loginFocus = i
	m.loginPhone.Blur()
	m.loginCode.Blur()
	switch i {
	case loginFocusPhone:
		m.loginPhone.Focus()
	case loginFocusCode:
		m.loginCode.Focus()
	}
}

// filteredSchools narrows the fixed school list by the search substring.
func (m *Model) filteredSchools() []string {
	query := strings.TrimSpace(m.schoolSearch.Value())
	if query == "" {
		return m.schools
	}
	out := make([]string, 0, len(m.schools))
	for _, s := range m.schools {
		if strings.Contains(s, query) {
			out = append(out, s)
		}
	}
	return out
}

// handleSchoolKey drives the school picker shown after login. Typing narrows
// the list; enter confirms the highlighted school.
func (m Model) handleSchoolKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.schoolIndex > 0 {
			m.schoolIndex--
		}
		return m, nil
	case "down":
		if m.schoolIndex < len(m.filteredSchools())-1 {
			m.schoolIndex++
		}
		return m, nil
	case "enter":
		schools := m.filteredSchools()
		if m.schoolIndex >= 0 && m.schoolIndex < len(schools) {
			m.session.SelectSchool(schools[m.schoolIndex])
		}
		return m, nil
	case "esc":
		// Backing out of the picker returns to login.
		m.logout()
		return m, nil
	}

	var cmd tea.Cmd
	m.schoolSearch, cmd = m.schoolSearch.Update(msg)
	m.schoolIndex = 0
	return m, cmd
}
