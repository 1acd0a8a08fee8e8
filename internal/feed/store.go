package feed

import (
	"fmt"

	"github.com/google/uuid"

	"campuslink/internal/logging"
)

// Store is the ordered in-memory post sequence, most-recent-first. It is
// owned by the root application model and mutated only through Publish and
// Remove; screens read it through Posts and the filter functions.
//
// The store is not safe for concurrent use. The shell drives all mutations
// from a single event loop, which is the only actor.
type Store struct {
	posts []Post
}

// NewStore seeds a store with the given posts, preserving their order.
func NewStore(seed []Post) *Store {
	s := &Store{posts: make([]Post, len(seed))}
	copy(s.posts, seed)
	return s
}

// Posts returns the posts in store order. The returned slice is shared;
// callers must treat it as read-only.
func (s *Store) Posts() []Post {
	return s.posts
}

// Len returns the number of posts in the store.
func (s *Store) Len() int {
	return len(s.posts)
}

// Get returns the post with the given id, if present.
func (s *Store) Get(id string) (Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Publish validates the draft, constructs a full Post authored by the given
// session user and prepends it to the store. The new post receives a fresh
// unique id, empty tags, zero engagement counters and a "just now" timestamp.
func (s *Store) Publish(draft Draft, author Author) (Post, error) {
	if err := draft.Validate(); err != nil {
		return Post{}, fmt.Errorf("publish rejected: %w", err)
	}

	p := Post{
		ID:          uuid.NewString(),
		Author:      author,
		Kind:        draft.Kind,
		Category:    draft.defaultCategory(),
		Body:        draft.Body,
		Attachments: draft.Attachments,
		Tags:        []string{},
		Price:       draft.Price,
		Deadline:    draft.Deadline,
		IsAnonymous: draft.IsAnonymous,
		CreatedAt:   "刚刚",
	}

	s.posts = append([]Post{p}, s.posts...)
	logging.Feed("published post %s kind=%s category=%s", p.ID, p.Kind, p.Category)
	return p, nil
}

// Remove deletes at most one post whose id matches and reports whether a
// post was removed. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			logging.Feed("removed post %s", id)
			return true
		}
	}
	return false
}

// Replace swaps the entire store contents, used by the seed hot-reload.
func (s *Store) Replace(posts []Post) {
	s.posts = make([]Post, len(posts))
	copy(s.posts, posts)
	logging.Feed("store replaced with %d seeded posts", len(posts))
}

// CountByAuthor returns how many posts the given user has published.
func (s *Store) CountByAuthor(userID string) int {
	n := 0
	for _, p := range s.posts {
		if p.Author.ID == userID {
			n++
		}
	}
	return n
}
