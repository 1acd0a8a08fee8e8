package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"campuslink/internal/feed"
)

// CardOptions controls optional parts of a rendered post card.
type CardOptions struct {
	Width    int
	Selected bool

	// Engagement overrides the stored like count with the card-local state.
	Engagement *feed.CardEngagement

	// ShowDelete marks the card as the session user's own deletable content.
	ShowDelete bool
}

// RenderPostCard renders one feed card: author line, body, marketplace fields
// when present, tags and the engagement row.
func RenderPostCard(s Styles, p feed.Post, opts CardOptions) string {
	var b strings.Builder

	b.WriteString(renderAuthorLine(s, p))
	b.WriteString("\n")
	b.WriteString(s.Body.Render(p.Body))
	b.WriteString("\n")

	if line := renderMarketLine(s, p); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(p.Attachments) > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("🖼 图片 ×%d", len(p.Attachments))))
		b.WriteString("\n")
	}
	if len(p.Tags) > 0 {
		b.WriteString(renderTags(s, p.Tags))
		b.WriteString("\n")
	}
	b.WriteString(renderEngagementRow(s, p, opts))

	card := s.Card
	if opts.Selected {
		card = card.BorderForeground(s.Theme.Primary)
	}
	if opts.Width > 4 {
		card = card.Width(opts.Width - 2)
	}
	return card.Render(b.String())
}

func renderAuthorLine(s Styles, p feed.Post) string {
	name := s.Bold.Render(p.DisplayName())

	var extras []string
	if p.Author.Verified && !p.IsAnonymous {
		extras = append(extras, s.Tag.Render("✓"))
	}
	if p.Author.Department != "" && !p.IsAnonymous {
		extras = append(extras, s.Muted.Render(p.Author.Department))
	}
	extras = append(extras, s.Muted.Render(p.CreatedAt))

	return name + " " + strings.Join(extras, " ")
}

// renderMarketLine renders the price and deadline for marketplace posts.
func renderMarketLine(s Styles, p feed.Post) string {
	if !p.Kind.IsMarket() {
		return ""
	}
	var parts []string
	if p.Price > 0 {
		parts = append(parts, s.Price.Render(FormatPrice(p.Price)))
	}
	if p.Deadline != "" {
		parts = append(parts, s.Deadline.Render("⏰ "+p.Deadline))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ")
}

func renderTags(s Styles, tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = s.Tag.Render("#" + t)
	}
	return strings.Join(out, " ")
}

func renderEngagementRow(s Styles, p feed.Post, opts CardOptions) string {
	liked := false
	likeCount := p.LikeCount
	if opts.Engagement != nil {
		liked = opts.Engagement.Liked
		likeCount = opts.Engagement.Count
	}

	heart := s.Muted.Render(fmt.Sprintf("♡ %d", likeCount))
	if liked {
		heart = s.Liked.Render(fmt.Sprintf("♥ %d", likeCount))
	}
	comments := s.Muted.Render(fmt.Sprintf("💬 %d", p.CommentCount))
	shares := s.Muted.Render(fmt.Sprintf("↗ %d", p.ShareCount))

	row := []string{heart, comments, shares}
	if p.ViewCount > 0 {
		row = append(row, s.Muted.Render(FormatViewCount(p.ViewCount)))
	}
	if opts.ShowDelete {
		row = append(row, s.Error.Render("删除"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(row, "  "))
}

// FormatPrice renders a marketplace price, dropping a trailing .00 for whole
// yuan amounts.
func FormatPrice(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("¥%d", int64(v))
	}
	return fmt.Sprintf("¥%.2f", v)
}

// FormatViewCount compacts large view counts the way the cards display them
// ("2.3k 浏览").
func FormatViewCount(n int) string {
	if n >= 1000 {
		return fmt.Sprintf("%.1fk 浏览", float64(n)/1000)
	}
	return fmt.Sprintf("%d 浏览", n)
}
