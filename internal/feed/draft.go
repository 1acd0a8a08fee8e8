package feed

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft is the partial post a user assembles in the publish composer. The
// store fills in everything else (id, author, timestamp, counters) when the
// draft is published.
type Draft struct {
	Kind        Kind     `validate:"required"`
	Body        string   `validate:"required"`
	Category    string   // optional; defaulted per kind when empty
	Attachments []string
	Price       float64 `validate:"gte=0"`
	Deadline    string
	IsAnonymous bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// "required" on Body must also reject whitespace-only content; the
	// composer's submit button stays disabled for blank drafts, and the
	// store enforces the same rule.
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		d := sl.Current().Interface().(Draft)
		if strings.TrimSpace(d.Body) == "" {
			sl.ReportError(d.Body, "Body", "Body", "notblank", "")
		}
	}, Draft{})
}

// Validate reports whether the draft is publishable.
func (d Draft) Validate() error {
	return validate.Struct(d)
}

// defaultCategory fills an empty category: social posts land in the
// daily-life category, everything else under a catch-all.
func (d Draft) defaultCategory() string {
	if d.Category != "" {
		return d.Category
	}
	if d.Kind == KindSocial {
		return "日常"
	}
	return "其他"
}
