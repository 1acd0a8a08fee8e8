// Package feed holds the post data model, the in-memory post store and the
// pure filtering functions shared by the Home and Market screens.
package feed

// Kind determines which optional fields of a Post are meaningful and how the
// card renders.
type Kind string

const (
	KindSocial    Kind = "SOCIAL"
	KindLostFound Kind = "LOST_FOUND"
	KindTrade     Kind = "TRADE"
	KindErrand    Kind = "ERRAND"
)

// Label returns the display label used by the composer's kind selector.
func (k Kind) Label() string {
	switch k {
	case KindSocial:
		return "日常动态"
	case KindLostFound:
		return "失物招领"
	case KindTrade:
		return "闲置转让"
	case KindErrand:
		return "跑腿求助"
	}
	return string(k)
}

// IsMarket reports whether posts of this kind belong on the Market screen.
func (k Kind) IsMarket() bool {
	return k == KindTrade || k == KindErrand
}

// Author is a denormalized snapshot of the user who published a post. It is a
// copy taken at publish time, never a live reference: later profile edits do
// not rewrite existing posts.
type Author struct {
	ID         string `yaml:"id" validate:"required"`
	Name       string `yaml:"name"`
	Avatar     string `yaml:"avatar"`
	Verified   bool   `yaml:"verified"`
	Department string `yaml:"department,omitempty"`
}

// Post is a unit of user-generated content. The author snapshot and the
// content fields are immutable after creation; only the engagement counters
// may change.
type Post struct {
	ID     string `yaml:"id"`
	Author Author `yaml:"author"`
	Kind   Kind   `yaml:"kind"`

	// Category is the free-text label used by the Home category tabs
	// (e.g. "活动", "跑腿"). It is independent of Kind.
	Category string `yaml:"category"`

	Body        string   `yaml:"body"`
	Attachments []string `yaml:"attachments,omitempty"`

	// Tags keep insertion order for display. Uniqueness is not enforced;
	// duplicates are a caller error, not rejected.
	Tags []string `yaml:"tags,omitempty"`

	LikeCount    int `yaml:"likes"`
	CommentCount int `yaml:"comments"`
	ShareCount   int `yaml:"shares"`

	// Price is meaningful for Trade and Errand posts only.
	Price float64 `yaml:"price,omitempty"`

	// Deadline is a display string, meaningful for Errand posts only.
	Deadline string `yaml:"deadline,omitempty"`

	// IsAnonymous suppresses the author identity when rendering.
	IsAnonymous bool `yaml:"anonymous,omitempty"`

	// CreatedAt is a display-formatted relative timestamp ("刚刚", "1小时前").
	// Posts carry no real clock.
	CreatedAt string `yaml:"created_at"`

	ViewCount int `yaml:"views,omitempty"`
}

// DisplayName returns the name to render on a card, substituting the generic
// anonymous identity when the post was published anonymously.
func (p Post) DisplayName() string {
	if p.IsAnonymous {
		return "匿名同学"
	}
	return p.Author.Name
}
