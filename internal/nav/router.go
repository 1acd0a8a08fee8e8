// Package nav models the shell's navigation state: the active bottom tab and
// an explicit stack of overlays layered above it. Making the stack a real
// data structure (instead of one boolean per overlay) keeps "which overlay is
// topmost" and "is the tab bar hidden" answerable by inspection.
package nav

import "campuslink/internal/logging"

// Tab is one of the mutually exclusive top-level screens. Publish is an
// action trigger on the tab bar, not a navigable tab: selecting it opens the
// publish overlay and leaves the current tab unchanged.
type Tab int

const (
	TabHome Tab = iota
	TabMarket
	TabPublish
	TabMessage
	TabProfile
)

// Label returns the tab bar label.
func (t Tab) Label() string {
	switch t {
	case TabHome:
		return "首页"
	case TabMarket:
		return "集市"
	case TabPublish:
		return "发布"
	case TabMessage:
		return "消息"
	case TabProfile:
		return "我的"
	}
	return "?"
}

// OverlayKind identifies an overlay variant.
type OverlayKind int

const (
	OverlayPostDetail OverlayKind = iota
	OverlayChatDetail
	OverlayPublish
	OverlayEditProfile
	OverlaySettings
	OverlayMessageDetail // received likes / comment replies list
	OverlayEventDetail
	OverlayProfileSub
	OverlaySearch
	OverlayShareSheet
	OverlayActionSheet
)

// Overlay is one entry on the stack. Ref carries the id of the entity the
// overlay is about (post id, thread id, sub-view name); it is empty for
// overlays that need no target.
type Overlay struct {
	Kind OverlayKind
	Ref  string
}

// bottomSheet overlays float above the current layer without covering it, so
// they do not hide the tab bar on their own.
func (o Overlay) bottomSheet() bool {
	return o.Kind == OverlayShareSheet || o.Kind == OverlayActionSheet
}

// Router holds the active tab and the overlay stack. The zero value is a
// router on the Home tab with nothing layered above it.
type Router struct {
	tab   Tab
	stack []Overlay
}

// Tab returns the active tab.
func (r *Router) Tab() Tab {
	return r.tab
}

// SetTab switches the active tab. Selecting Publish is rejected here; the
// shell maps it to pushing the publish overlay instead.
func (r *Router) SetTab(t Tab) {
	if t == TabPublish {
		return
	}
	r.tab = t
	logging.Nav("tab -> %s", t.Label())
}

// Push layers an overlay on top of the stack.
func (r *Router) Push(o Overlay) {
	r.stack = append(r.stack, o)
	logging.Nav("push overlay kind=%d ref=%q depth=%d", o.Kind, o.Ref, len(r.stack))
}

// Pop removes the topmost overlay and returns it. Popping an empty stack
// returns false: close actions never navigate past the tab view.
func (r *Router) Pop() (Overlay, bool) {
	if len(r.stack) == 0 {
		return Overlay{}, false
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	logging.Nav("pop overlay kind=%d depth=%d", top.Kind, len(r.stack))
	return top, true
}

// Top returns the topmost overlay, if any.
func (r *Router) Top() (Overlay, bool) {
	if len(r.stack) == 0 {
		return Overlay{}, false
	}
	return r.stack[len(r.stack)-1], true
}

// Depth returns the number of stacked overlays.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Has reports whether an overlay of the given kind is anywhere on the stack.
func (r *Router) Has(kind OverlayKind) bool {
	for _, o := range r.stack {
		if o.Kind == kind {
			return true
		}
	}
	return false
}

// TabBarVisible reports whether the bottom tab bar should render. Any
// full-screen overlay hides it; bottom sheets alone do not.
func (r *Router) TabBarVisible() bool {
	for _, o := range r.stack {
		if !o.bottomSheet() {
			return false
		}
	}
	return true
}

// Clear drops every overlay. Used by logout and by the publish flow when it
// jumps straight to a tab.
func (r *Router) Clear() {
	r.stack = r.stack[:0]
}

// Reset returns the router to the default tab with an empty stack.
func (r *Router) Reset() {
	r.Clear()
	r.tab = TabHome
	logging.Nav("router reset")
}

// CloseRef removes every overlay whose Ref matches the given id, preserving
// the order of the rest. Deleting a post must also close a detail view (or
// action sheet) that is showing it.
func (r *Router) CloseRef(ref string) {
	kept := r.stack[:0]
	for _, o := range r.stack {
		if o.Ref != ref {
			kept = append(kept, o)
		}
	}
	r.stack = kept
}
