package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/feedclip"
	main "github.com/fwojciec/feedclip/cmd/feedclip"
	"github.com/fwojciec/feedclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "testdata/feed.html"

// newMain returns a Main whose database lives in a temporary directory.
func newMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

// decodeRecords reads the stream of JSON records written by clip.
func decodeRecords(t *testing.T, r io.Reader) []feedclip.Record {
	t.Helper()
	var recs []feedclip.Record
	dec := json.NewDecoder(r)
	for {
		var rec feedclip.Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return recs
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"clip", "serve", "entries", "patterns"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout.String(), "clip")
}

func TestMain_Run_UnknownCommandReturnsError(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), []string{"bogus"}, stdout, stderr)

	require.Error(t, err)
}

func TestMain_Run_Clip(t *testing.T) {
	t.Parallel()

	t.Run("prints a record for every feed item in a file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(),
			[]string{"clip", "--file", fixture, "--url", "https://www.linkedin.com/feed/"}, stdout, stderr)
		require.NoError(t, err)

		assert.Equal(t, []feedclip.Record{
			{
				Text:   "New MCP server for Postgres: pg-mcp",
				Author: "Jane Doe",
				URL:    "https://github.com/acme/pg-mcp",
			},
			{
				Text:   "Thoughts on agents. #ai",
				Author: "John Roe",
				URL:    "https://www.linkedin.com/feed/update/urn:li:activity:2",
			},
		}, decodeRecords(t, stdout))
	})

	t.Run("fetches the page when no file is given", func(t *testing.T) {
		t.Parallel()

		html, err := os.ReadFile(fixture)
		require.NoError(t, err)

		var fetched string
		m := newMain(t)
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return string(html), nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err = m.Run(context.Background(),
			[]string{"clip", "--url", "https://www.linkedin.com/feed/", "--target", "[data-urn='urn:li:activity:2'] span"}, stdout, stderr)
		require.NoError(t, err)

		assert.Equal(t, "https://www.linkedin.com/feed/", fetched)
		recs := decodeRecords(t, stdout)
		require.Len(t, recs, 1)
		assert.Equal(t, "John Roe", recs[0].Author)
	})

	t.Run("reports a target that matches nothing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(),
			[]string{"clip", "--file", fixture, "--target", "#missing"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, feedclip.ENOTFOUND, feedclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Error: no element matches #missing")
		assert.Empty(t, stdout.String())
	})

	t.Run("reports a start node outside any post", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(),
			[]string{"clip", "--file", fixture, "--target", "title"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Error: Could not find valid post data. Ensure you right-clicked on a post.")
	})

	t.Run("reports a page without posts", func(t *testing.T) {
		t.Parallel()

		page := writeFile(t, "empty.html", "<html><body><p>Nothing here</p></body></html>")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"clip", "--file", page}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, feedclip.ENOTFOUND, feedclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Could not find valid post data")
	})

	t.Run("requires a url or a file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"clip"}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, feedclip.EINVALID, feedclip.ErrorCode(err))
	})

	t.Run("applies a patterns file", func(t *testing.T) {
		t.Parallel()

		page := writeFile(t, "blog.html", `<html><body>
			<article class="entry"><h2 class="by">Ada</h2><div class="body"><span>Hello <a href="https://example.org/x">x</a></span></div></article>
		</body></html>`)
		patterns := writeFile(t, "patterns.yaml", `
container: ["article.entry"]
author: [".by"]
text: [".body"]
permalink_attr: ""
`)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(),
			[]string{"clip", "--file", page, "--patterns", patterns}, stdout, stderr)
		require.NoError(t, err)

		assert.Equal(t, []feedclip.Record{
			{Text: "Hello x", Author: "Ada", URL: "https://example.org/x"},
		}, decodeRecords(t, stdout))
	})

	t.Run("rejects a patterns file with an invalid selector", func(t *testing.T) {
		t.Parallel()

		patterns := writeFile(t, "patterns.yaml", "author: [\"span[\"]\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(),
			[]string{"clip", "--file", fixture, "--patterns", patterns}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, feedclip.EINVALID, feedclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "invalid author selector")
	})
}

func TestMain_Run_ClipSend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		receipt *feedclip.Receipt
		err     error
		stdout  string
		stderr  string
	}{
		{
			name:    "reports the tab a new record was saved to",
			receipt: &feedclip.Receipt{Status: feedclip.StatusSuccess, Category: "MCP", Tab: "MCP"},
			stdout:  "Success! Saved to tab: MCP\nCategory: MCP",
		},
		{
			name:    "reports a record saved before",
			receipt: &feedclip.Receipt{Status: feedclip.StatusDuplicate, Category: "Repo", Tab: "Repos in github"},
			stdout:  "Already saved in tab: Repos in github\nCategory: Repo",
		},
		{
			name:   "reports an unreachable endpoint",
			err:    feedclip.Errorf(feedclip.EUNAVAILABLE, "cannot connect to localhost:8000"),
			stderr: "Error: Cannot connect to localhost:8000.",
		},
		{
			name:   "reports a failing endpoint",
			err:    feedclip.Errorf(feedclip.EINTERNAL, "backend processing failed: HTTP 500"),
			stderr: "Error: Backend processing failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sent []*feedclip.Record
			m := newMain(t)
			m.Sender = &mock.Sender{
				SendFn: func(_ context.Context, rec *feedclip.Record) (*feedclip.Receipt, error) {
					sent = append(sent, rec)
					return tt.receipt, tt.err
				},
			}

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(context.Background(),
				[]string{"clip", "--file", fixture, "--target", "[data-urn='urn:li:activity:1']", "--send"}, stdout, stderr)

			if tt.err != nil {
				require.Error(t, err)
				assert.Contains(t, stderr.String(), tt.stderr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, stdout.String(), tt.stdout)
			}
			require.Len(t, sent, 1)
			assert.Equal(t, "Jane Doe", sent[0].Author)
		})
	}
}

func TestMain_Run_ClipSendNamesEndpointHost(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	m.Sender = &mock.Sender{
		SendFn: func(context.Context, *feedclip.Record) (*feedclip.Receipt, error) {
			return nil, feedclip.Errorf(feedclip.EUNAVAILABLE, "cannot connect to 10.0.0.5:9000: connection refused")
		},
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(),
		[]string{"clip", "--file", fixture, "--target", "[data-urn='urn:li:activity:1']", "--send",
			"--endpoint", "http://10.0.0.5:9000/process"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "Error: Cannot connect to 10.0.0.5:9000.")
	assert.NotContains(t, stderr.String(), "/process")
}

func TestMain_Run_Patterns(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), []string{"patterns"}, stdout, stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "container:")
	assert.Contains(t, out, ".feed-shared-update-v2")
	assert.Contains(t, out, "permalink_attr: data-urn")
	assert.Contains(t, out, "platform_domains:")
}

func TestMain_Run_Entries(t *testing.T) {
	t.Parallel()

	t.Run("reports an empty knowledge base", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		db := filepath.Join(t.TempDir(), "kb.db")
		err := newMain(t).Run(context.Background(), []string{"entries", "--db", db}, stdout, stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "No entries found")
	})
}
