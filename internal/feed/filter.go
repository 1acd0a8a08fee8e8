package feed

import "strings"

// The two Home categories that mean "show everything". There is no follow
// graph, so 关注 behaves the same as 推荐.
const (
	CategoryRecommended = "推荐"
	CategoryFollowing   = "关注"
)

// HomeCategories is the fixed tab row on the Home screen, in display order.
var HomeCategories = []string{
	CategoryRecommended, CategoryFollowing, "失物", "表白", "问答", "活动", "社团",
}

// Filter selects the posts visible on the Home screen. It is pure: the result
// preserves store order and the input is never mutated.
//
// When search is active with non-empty text, a post matches if its body or
// any of its tags contains the text as a case-sensitive substring; the
// category is ignored. Otherwise the sentinel categories pass everything and
// any other category requires an exact match.
func Filter(posts []Post, activeCategory, searchText string, searchActive bool) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if matches(p, activeCategory, searchText, searchActive) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Post, activeCategory, searchText string, searchActive bool) bool {
	if searchActive && searchText != "" {
		if strings.Contains(p.Body, searchText) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(tag, searchText) {
				return true
			}
		}
		return false
	}
	if activeCategory == CategoryRecommended || activeCategory == CategoryFollowing {
		return true
	}
	return p.Category == activeCategory
}

// MarketView is the Market screen's three-way kind selector.
type MarketView int

const (
	MarketAll MarketView = iota
	MarketTrade
	MarketErrand
)

// Label returns the selector pill label.
func (v MarketView) Label() string {
	switch v {
	case MarketTrade:
		return "闲置"
	case MarketErrand:
		return "跑腿"
	}
	return "全部"
}

// MarketFilter narrows posts to the marketplace kinds, optionally to exactly
// one of them. It does not use text search or category filtering, and result
// order matches store order.
func MarketFilter(posts []Post, view MarketView) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		switch view {
		case MarketTrade:
			if p.Kind != KindTrade {
				continue
			}
		case MarketErrand:
			if p.Kind != KindErrand {
				continue
			}
		default:
			if !p.Kind.IsMarket() {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// ByAuthor selects the posts published by the given user, in store order.
// Used by the profile "my posts" sub-view.
func ByAuthor(posts []Post, userID string) []Post {
	out := make([]Post, 0)
	for _, p := range posts {
		if p.Author.ID == userID {
			out = append(out, p)
		}
	}
	return out
}

// TradesByAuthor selects the given user's marketplace posts, in store order.
// Used by the profile "my trades" sub-view.
func TradesByAuthor(posts []Post, userID string) []Post {
	out := make([]Post, 0)
	for _, p := range posts {
		if p.Author.ID == userID && p.Kind.IsMarket() {
			out = append(out, p)
		}
	}
	return out
}
