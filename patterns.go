package feedclip

// Patterns is the static structural configuration used to read one feed
// item. Each list is tried as documented on the field.
type Patterns struct {
	// Container signatures. The nearest ancestor matching any of them wins.
	Container []Selector `yaml:"container"`

	// Author signatures, tried strictly in order until one yields a name.
	Author []Selector `yaml:"author"`

	// Body-text signatures. The first descendant matching any of them in
	// document order is the body region.
	Text []Selector `yaml:"text"`

	// Replies region, reply items within it, and the author name and
	// body region within each reply.
	ReplyList   []Selector `yaml:"reply_list"`
	ReplyItem   []Selector `yaml:"reply_item"`
	ReplyAuthor []Selector `yaml:"reply_author"`
	ReplyBody   []Selector `yaml:"reply_body"`

	// Timestamp links used for the permalink when the container carries
	// no identifier attribute.
	Timestamp []Selector `yaml:"timestamp"`

	// PermalinkAttr names the container attribute holding the item's stable
	// identifier. PermalinkBase is prepended to its value.
	PermalinkAttr string `yaml:"permalink_attr"`
	PermalinkBase string `yaml:"permalink_base"`

	// PlatformDomains are the host platform's own domains; links to them or
	// their subdomains are never external.
	PlatformDomains []string `yaml:"platform_domains"`

	// InternalPaths are path fragments marking tag/category pages.
	InternalPaths []string `yaml:"internal_paths"`
}

// DefaultPatterns returns the signatures of the LinkedIn feed.
func DefaultPatterns() *Patterns {
	return &Patterns{
		Container: []Selector{
			".feed-shared-update-v2",
			".occludable-update",
			"[data-urn]",
		},
		Author: []Selector{
			".update-components-actor__name",
			`.update-components-actor__title span[dir="ltr"]`,
			".feed-shared-actor__name",
		},
		Text: []Selector{
			".feed-shared-update-v2__description",
			".update-components-text",
			".feed-shared-text",
		},
		ReplyList: []Selector{
			".comments-comments-list",
			".feed-shared-update-v2__comments-container",
		},
		ReplyItem: []Selector{
			".comments-comment-item",
			".comments-comment-entity",
		},
		ReplyAuthor: []Selector{
			".comments-post-meta__name-text",
			".comments-comment-meta__description-title",
		},
		ReplyBody: []Selector{
			".comments-comment-item__main-content",
			".comments-comment-item-content-body",
		},
		Timestamp: []Selector{
			"a.update-components-actor__sub-description",
			"a.feed-shared-actor__sub-description",
		},
		PermalinkAttr:   "data-urn",
		PermalinkBase:   "https://www.linkedin.com/feed/update/",
		PlatformDomains: []string{"linkedin.com"},
		InternalPaths:   []string{"/feed/hashtag"},
	}
}

// Validate returns an error if the patterns cannot locate a feed item.
func (p *Patterns) Validate() error {
	if len(p.Container) == 0 {
		return Errorf(EINVALID, "at least one container selector required")
	}
	for _, sel := range p.Container {
		if sel == "" {
			return Errorf(EINVALID, "container selector must not be empty")
		}
	}
	if p.PermalinkAttr != "" && p.PermalinkBase == "" {
		return Errorf(EINVALID, "permalink base required when permalink attribute is set")
	}
	return nil
}
