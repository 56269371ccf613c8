package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fwojciec/feedclip"
)

// DefaultEndpoint is the processing endpoint of a local `feedclip serve`.
const DefaultEndpoint = "http://localhost:8000/process"

// Ensure Sender implements feedclip.Sender at compile time.
var _ feedclip.Sender = (*Sender)(nil)

// Sender posts records as JSON to a processing endpoint.
type Sender struct {
	endpoint string
	host     string
	client   *http.Client
}

// NewSender creates a Sender for the given endpoint URL.
// Returns EINVALID if endpoint is not an absolute http(s) URL.
func NewSender(endpoint string, opts ...Option) (*Sender, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, feedclip.Errorf(feedclip.EINVALID, "invalid endpoint %q", endpoint)
	}

	o := newOptions(opts)
	return &Sender{
		endpoint: endpoint,
		host:     u.Host,
		client:   &http.Client{Timeout: o.timeout},
	}, nil
}

// Send delivers rec in a single attempt and decodes the receipt.
func (s *Sender) Send(ctx context.Context, rec *feedclip.Record) (*feedclip.Receipt, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// The transport cause tells a timeout from a refused connection.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, feedclip.Errorf(feedclip.EUNAVAILABLE, "cannot connect to %s: %v", s.host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, feedclip.Errorf(feedclip.EINTERNAL, "backend processing failed: HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	var receipt feedclip.Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, feedclip.Errorf(feedclip.EINTERNAL, "backend processing failed: invalid response: %v", err)
	}
	return &receipt, nil
}
