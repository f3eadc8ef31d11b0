package timeline

import (
	"regexp"
	"strings"

	"github.com/aretw0/localsettings/pkg/domain"
)

// Visibility values of a status.
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
	VisibilityPrivate  = "private"
	VisibilityDirect   = "direct"
)

// Status is the subset of a toot the home column filter inspects.
type Status struct {
	ID                 string `json:"id"`
	AccountID          string `json:"account_id"`
	Content            string `json:"content"`
	SpoilerText        string `json:"spoiler_text"`
	Visibility         string `json:"visibility"`
	InReplyToID        string `json:"in_reply_to_id,omitempty"`
	InReplyToAccountID string `json:"in_reply_to_account_id,omitempty"`
	// ReblogOf is the id of the boosted status, empty for original toots.
	ReblogOf string `json:"reblog_of,omitempty"`
}

// Filter applies the home column settings to a timeline.
type Filter struct {
	me       string
	settings domain.ColumnSettings
	regex    *regexp.Regexp
}

// NewFilter compiles the column settings for the viewing account me.
// An invalid regular expression disables regex filtering.
func NewFilter(settings domain.ColumnSettings, me string) *Filter {
	f := &Filter{me: me, settings: settings}
	if body := strings.TrimSpace(settings.Regex.Body); body != "" {
		if re, err := regexp.Compile("(?i)" + body); err == nil {
			f.regex = re
		}
	}
	return f
}

// Show reports whether a status stays visible in the column.
func (f *Filter) Show(s Status) bool {
	if !f.settings.Shows.Reblog && s.ReblogOf != "" {
		return false
	}
	if !f.settings.Shows.Reply && s.InReplyToID != "" && s.InReplyToAccountID != f.me {
		return false
	}
	if !f.settings.Shows.Direct && s.Visibility == VisibilityDirect {
		return false
	}
	if f.regex != nil && s.AccountID != f.me && f.regex.MatchString(searchIndex(s)) {
		return false
	}
	return true
}

// Apply returns the visible statuses in order.
func (f *Filter) Apply(statuses []Status) []Status {
	out := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		if f.Show(s) {
			out = append(out, s)
		}
	}
	return out
}

func searchIndex(s Status) string {
	if s.SpoilerText == "" {
		return s.Content
	}
	return s.SpoilerText + "\n\n" + s.Content
}
