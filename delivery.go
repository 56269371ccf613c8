package feedclip

import "context"

// Receipt statuses reported by a RecordProcessor.
const (
	StatusSuccess   = "success"
	StatusDuplicate = "duplicate"
)

// Receipt is the processing endpoint's answer for a delivered record.
type Receipt struct {
	Status   string `json:"status"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Tab      string `json:"tab"`
}

// RecordProcessor classifies a record and files it into the knowledge base.
type RecordProcessor interface {
	// Process returns EINVALID if the record has no text and EUNAVAILABLE
	// if the knowledge base cannot be reached.
	Process(ctx context.Context, rec *Record) (*Receipt, error)
}

// Sender delivers records to a remote RecordProcessor.
// A single attempt is made per call.
type Sender interface {
	// Send returns EUNAVAILABLE if the endpoint cannot be reached and
	// EINTERNAL if it answers with a non-success status.
	Send(ctx context.Context, rec *Record) (*Receipt, error)
}
