package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/feedclip"
	"github.com/fwojciec/feedclip/mock"
	feedclipslog "github.com/fwojciec/feedclip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRecord = &feedclip.Record{
	Text:   "Shipping a new tool.",
	Author: "Jane Doe",
	URL:    "https://github.com/acme/tool",
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved fields at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(feedclip.Node) (*feedclip.Record, error) {
				return sampleRecord, nil
			},
		}

		rec, err := feedclipslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract(nil)

		require.NoError(t, err)
		assert.Equal(t, sampleRecord, rec)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, `author="Jane Doe"`)
		assert.Contains(t, output, "url=https://github.com/acme/tool")
		assert.Contains(t, output, "chars=20")
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(feedclip.Node) (*feedclip.Record, error) {
				return sampleRecord, nil
			},
		}

		_, err := feedclipslog.NewLoggingExtractor(inner, slog.New(slog.NewTextHandler(&buf, nil))).Extract(nil)

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Extractor{
			ExtractFn: func(feedclip.Node) (*feedclip.Record, error) {
				return nil, feedclip.Errorf(feedclip.ENOTFOUND, "could not find post container")
			},
		}

		_, err := feedclipslog.NewLoggingExtractor(inner, newLogger(&buf)).Extract(nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "could not find post container")
		assert.NotContains(t, buf.String(), "author=")
	})
}

func TestLoggingSender_Send(t *testing.T) {
	t.Parallel()

	t.Run("logs receipt", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Sender{
			SendFn: func(context.Context, *feedclip.Record) (*feedclip.Receipt, error) {
				return &feedclip.Receipt{Status: feedclip.StatusSuccess, Tab: "Tools"}, nil
			},
		}

		receipt, err := feedclipslog.NewLoggingSender(inner, newLogger(&buf)).Send(context.Background(), sampleRecord)

		require.NoError(t, err)
		assert.Equal(t, "Tools", receipt.Tab)
		output := buf.String()
		assert.Contains(t, output, "msg=send")
		assert.Contains(t, output, "status=success")
		assert.Contains(t, output, "tab=Tools")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs transport error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Sender{
			SendFn: func(context.Context, *feedclip.Record) (*feedclip.Receipt, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := feedclipslog.NewLoggingSender(inner, newLogger(&buf)).Send(context.Background(), sampleRecord)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, `msg="send failed"`)
		assert.Contains(t, output, "code=internal")
		assert.Contains(t, output, `err="connection refused"`)
	})
}

func TestLoggingClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("logs category", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Classifier{
			ClassifyFn: func(context.Context, *feedclip.Record) (*feedclip.Classification, error) {
				return &feedclip.Classification{Category: feedclip.CategoryRAG}, nil
			},
		}

		cls, err := feedclipslog.NewLoggingClassifier(inner, newLogger(&buf)).Classify(context.Background(), sampleRecord)

		require.NoError(t, err)
		assert.Equal(t, feedclip.CategoryRAG, cls.Category)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "category=RAG")
	})

	t.Run("logs failure at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Classifier{
			ClassifyFn: func(context.Context, *feedclip.Record) (*feedclip.Classification, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		_, err := feedclipslog.NewLoggingClassifier(inner, newLogger(&buf)).Classify(context.Background(), sampleRecord)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})
}

func TestLoggingProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("logs receipt", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordProcessor{
			ProcessFn: func(context.Context, *feedclip.Record) (*feedclip.Receipt, error) {
				return &feedclip.Receipt{Status: feedclip.StatusDuplicate, Category: "Tool", Tab: "Tools"}, nil
			},
		}

		_, err := feedclipslog.NewLoggingProcessor(inner, newLogger(&buf)).Process(context.Background(), sampleRecord)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=process")
		assert.Contains(t, output, "status=duplicate")
		assert.Contains(t, output, "category=Tool")
	})

	t.Run("logs error code and message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.RecordProcessor{
			ProcessFn: func(context.Context, *feedclip.Record) (*feedclip.Receipt, error) {
				return nil, feedclip.Errorf(feedclip.EUNAVAILABLE, "knowledge base connection not active")
			},
		}

		_, err := feedclipslog.NewLoggingProcessor(inner, newLogger(&buf)).Process(context.Background(), sampleRecord)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=unavailable")
		assert.Contains(t, buf.String(), `err="knowledge base connection not active"`)
	})
}
