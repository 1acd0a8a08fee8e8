package session

import "testing"

func newTestSession() *Session {
	return New(User{
		ID: "me", Name: "陈同学", Verified: true,
		Department: "计算机学院", Bio: "好好学习",
	})
}

func TestPhaseTransitions(t *testing.T) {
	s := newTestSession()
	if s.Phase() != PhaseLogin {
		t.Fatalf("initial phase = %v, want PhaseLogin", s.Phase())
	}

	// Selecting a school before login succeeds is a no-op.
	s.SelectSchool("清华大学")
	if s.Phase() != PhaseLogin || s.User().School != "" {
		t.Errorf("premature school select took effect: phase=%v school=%q", s.Phase(), s.User().School)
	}

	s.LoginSucceeded()
	if s.Phase() != PhaseSchoolSelect {
		t.Fatalf("phase after login = %v, want PhaseSchoolSelect", s.Phase())
	}

	// Repeating login in the wrong phase changes nothing.
	s.LoginSucceeded()
	if s.Phase() != PhaseSchoolSelect {
		t.Errorf("duplicate login advanced the phase to %v", s.Phase())
	}

	s.SelectSchool("福建商学院")
	if s.Phase() != PhaseActive {
		t.Fatalf("phase after school select = %v, want PhaseActive", s.Phase())
	}
	if s.User().School != "福建商学院" {
		t.Errorf("school = %q", s.User().School)
	}
}

func TestLogout(t *testing.T) {
	s := newTestSession()
	s.LoginSucceeded()
	s.SelectSchool("厦门大学")

	s.Logout()

	if s.Phase() != PhaseLogin {
		t.Errorf("phase after logout = %v, want PhaseLogin", s.Phase())
	}
	// The seeded identity survives logout.
	if s.User().Name != "陈同学" {
		t.Errorf("user cleared by logout: %+v", s.User())
	}
}

func TestApplyEdit(t *testing.T) {
	s := newTestSession()

	s.ApplyEdit(ProfileEdit{Name: "陈小同", Bio: "新签名", Department: "软件学院"})
	u := s.User()
	if u.Name != "陈小同" || u.Bio != "新签名" || u.Department != "软件学院" {
		t.Errorf("edit not applied: %+v", u)
	}

	// An empty name cannot wipe the display name; the other fields still apply.
	s.ApplyEdit(ProfileEdit{Name: "", Bio: "", Department: "软件学院"})
	u = s.User()
	if u.Name != "陈小同" {
		t.Errorf("empty name wiped display name: %q", u.Name)
	}
	if u.Bio != "" {
		t.Errorf("bio not cleared: %q", u.Bio)
	}
}

func TestAuthorSnapshot(t *testing.T) {
	s := newTestSession()
	a := s.User().AuthorSnapshot()
	if a.ID != "me" || a.Name != "陈同学" || !a.Verified || a.Department != "计算机学院" {
		t.Errorf("snapshot mismatch: %+v", a)
	}
}
