package feed

// CardEngagement is the per-card optimistic like state. Each rendered card
// owns one, initialized from the post's stored count at render time. Toggles
// are never written back to the store: navigating away and re-rendering
// resets the counter to the stored value. Likes are optimistic and
// session-only, and that divergence is intentional.
type CardEngagement struct {
	Liked bool
	Count int
}

// NewCardEngagement initializes the local counter from a post's stored count.
func NewCardEngagement(p Post) CardEngagement {
	return CardEngagement{Count: p.LikeCount}
}

// Toggle flips the liked flag and adjusts the local counter: like increments,
// unlike decrements. Toggling twice returns to the initial state.
func (e *CardEngagement) Toggle() {
	if e.Liked {
		e.Count--
	} else {
		e.Count++
	}
	e.Liked = !e.Liked
}
