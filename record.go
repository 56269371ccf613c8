package feedclip

// Sentinel values used when a field cannot be resolved.
const (
	UnknownAuthor = "Unknown Author"
	UnknownURL    = "Unknown URL"
	TextNotFound  = "[Image/Video Post or Text not found]"
)

// Record is the structured result of extracting one feed item.
// Author and URL fall back to their sentinels. Text is the sentinel when
// the item has no body region and empty when that region is blank.
type Record struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Validate returns an error if the record cannot be processed.
func (r *Record) Validate() error {
	if r.Text == "" {
		return Errorf(EINVALID, "No text provided")
	}
	return nil
}

// Extractor builds a Record from a node inside a feed item.
type Extractor interface {
	// Extract locates the feed item enclosing start and resolves its fields.
	// Returns ENOTFOUND if start is nil or no enclosing item is recognized.
	Extract(start Node) (*Record, error)
}
