package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/feedclip"
)

// Messages shown to the person who asked for a post to be saved.

func extractMessage(err error) string {
	if feedclip.ErrorCode(err) == feedclip.ENOTFOUND {
		return "Error: Could not find valid post data. Ensure you right-clicked on a post."
	}
	return "Error: " + feedclip.ErrorMessage(err)
}

func sendMessage(err error, endpoint string) string {
	switch feedclip.ErrorCode(err) {
	case feedclip.EUNAVAILABLE:
		return fmt.Sprintf("Error: Cannot connect to %s.", endpointHost(endpoint))
	case feedclip.EINTERNAL:
		return "Error: Backend processing failed."
	default:
		return "Error: " + feedclip.ErrorMessage(err)
	}
}

// endpointHost returns the host:port of endpoint, or endpoint itself when it
// does not parse.
func endpointHost(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

func receiptMessage(r *feedclip.Receipt) string {
	if r.Status == feedclip.StatusDuplicate {
		return fmt.Sprintf("Already saved in tab: %s\nCategory: %s", r.Tab, r.Category)
	}
	return fmt.Sprintf("Success! Saved to tab: %s\nCategory: %s", r.Tab, r.Category)
}
