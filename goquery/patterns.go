package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/feedclip"
)

// ValidatePatterns checks that p can locate a feed item and that every
// selector in it is valid CSS.
func ValidatePatterns(p *feedclip.Patterns) error {
	if err := p.Validate(); err != nil {
		return err
	}

	lists := []struct {
		name      string
		selectors []feedclip.Selector
	}{
		{"container", p.Container},
		{"author", p.Author},
		{"text", p.Text},
		{"reply_list", p.ReplyList},
		{"reply_item", p.ReplyItem},
		{"reply_author", p.ReplyAuthor},
		{"reply_body", p.ReplyBody},
		{"timestamp", p.Timestamp},
	}
	for _, l := range lists {
		for _, sel := range l.selectors {
			if _, err := cascadia.Compile(string(sel)); err != nil {
				return feedclip.Errorf(feedclip.EINVALID, "invalid %s selector %q: %v", l.name, sel, err)
			}
		}
	}
	return nil
}
