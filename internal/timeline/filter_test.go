package timeline_test

import (
	"testing"

	"github.com/aretw0/localsettings/internal/timeline"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	statuses := []timeline.Status{
		{ID: "1", AccountID: "a", Content: "hello world", Visibility: timeline.VisibilityPublic},
		{ID: "2", AccountID: "b", ReblogOf: "1", Visibility: timeline.VisibilityPublic},
		{ID: "3", AccountID: "b", Content: "re", InReplyToID: "1", InReplyToAccountID: "a", Visibility: timeline.VisibilityPublic},
		{ID: "4", AccountID: "b", Content: "re me", InReplyToID: "9", InReplyToAccountID: "me", Visibility: timeline.VisibilityPublic},
		{ID: "5", AccountID: "b", Content: "psst", Visibility: timeline.VisibilityDirect},
		{ID: "6", AccountID: "c", SpoilerText: "Spoilers", Content: "plot", Visibility: timeline.VisibilityPublic},
		{ID: "7", AccountID: "me", Content: "my spoilers", Visibility: timeline.VisibilityPublic},
	}

	ids := func(in []timeline.Status) []string {
		out := make([]string, len(in))
		for i, s := range in {
			out[i] = s.ID
		}
		return out
	}

	tests := []struct {
		name string
		edit func(*domain.ColumnSettings)
		want []string
	}{
		{"defaults show everything", func(*domain.ColumnSettings) {}, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"hide boosts", func(c *domain.ColumnSettings) { c.Shows.Reblog = false }, []string{"1", "3", "4", "5", "6", "7"}},
		{"hide replies keeps replies to me", func(c *domain.ColumnSettings) { c.Shows.Reply = false }, []string{"1", "2", "4", "5", "6", "7"}},
		{"hide direct", func(c *domain.ColumnSettings) { c.Shows.Direct = false }, []string{"1", "2", "3", "4", "6", "7"}},
		{"regex matches spoiler case-insensitively", func(c *domain.ColumnSettings) { c.Regex.Body = "spoilers" }, []string{"1", "2", "3", "4", "5", "7"}},
		{"invalid regex is ignored", func(c *domain.ColumnSettings) { c.Regex.Body = "(" }, []string{"1", "2", "3", "4", "5", "6", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultSettings().Home
			tt.edit(&settings)
			got := timeline.NewFilter(settings, "me").Apply(statuses)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
