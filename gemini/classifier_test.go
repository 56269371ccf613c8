package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/feedclip"
	"github.com/fwojciec/feedclip/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for record without text", func(t *testing.T) {
		t.Parallel()

		c := gemini.NewClassifier(nil)

		_, err := c.Classify(context.Background(), &feedclip.Record{Author: "Jane"})

		require.Error(t, err)
		assert.Equal(t, feedclip.EINVALID, feedclip.ErrorCode(err))
	})

	t.Run("returns EUNAVAILABLE without client", func(t *testing.T) {
		t.Parallel()

		c := gemini.NewClassifier(nil)

		_, err := c.Classify(context.Background(), &feedclip.Record{Text: "hello"})

		require.Error(t, err)
		assert.Equal(t, feedclip.EUNAVAILABLE, feedclip.ErrorCode(err))
	})
}

func TestNewClassifier(t *testing.T) {
	t.Parallel()

	t.Run("uses default model", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, gemini.DefaultModel, gemini.NewClassifier(nil).Model())
	})

	t.Run("applies model option", func(t *testing.T) {
		t.Parallel()

		c := gemini.NewClassifier(nil, gemini.WithModel("gemini-2.5-pro"))

		assert.Equal(t, "gemini-2.5-pro", c.Model())
	})

	t.Run("ignores empty model", func(t *testing.T) {
		t.Parallel()

		c := gemini.NewClassifier(nil, gemini.WithModel(""))

		assert.Equal(t, gemini.DefaultModel, c.Model())
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("English")

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	instruction := config.SystemInstruction.Parts[0].Text
	assert.Contains(t, instruction, "English summary")
	for _, c := range feedclip.Categories {
		assert.Contains(t, instruction, "'"+string(c)+"'")
	}
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.Temperature)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt(&feedclip.Record{
		Text:   "Shipping a new tool.\n\nRepo in comments.",
		Author: "Jane Doe",
		URL:    "https://github.com/acme/tool",
	})

	assert.Equal(t, "Input Post Author: Jane Doe\n"+
		"Input Post URL: https://github.com/acme/tool\n"+
		"Input Post Text:\nShipping a new tool.\n\nRepo in comments.", prompt)
}

func TestParseClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want *feedclip.Classification
	}{
		{
			name: "plain JSON",
			raw:  `{"summary":"A tool.","category":"Tool","author":"Jane Doe"}`,
			want: &feedclip.Classification{Summary: "A tool.", Category: feedclip.CategoryTool, Author: "Jane Doe"},
		},
		{
			name: "json code fence",
			raw:  "```json\n{\"summary\":\"Retrieval.\",\"category\":\"RAG\",\"author\":\"\"}\n```",
			want: &feedclip.Classification{Summary: "Retrieval.", Category: feedclip.CategoryRAG},
		},
		{
			name: "bare code fence",
			raw:  "```\n{\"summary\":\"S\",\"category\":\"MCP\",\"author\":\"A\"}\n```",
			want: &feedclip.Classification{Summary: "S", Category: feedclip.CategoryMCP, Author: "A"},
		},
		{
			name: "object surrounded by prose",
			raw:  "Here you go:\n{\"summary\":\"S\",\"category\":\"learning\",\"author\":\"A\"}\nHope it helps.",
			want: &feedclip.Classification{Summary: "S", Category: feedclip.CategoryLearning, Author: "A"},
		},
		{
			name: "unknown category",
			raw:  `{"summary":"S","category":"Blockchain","author":"A"}`,
			want: &feedclip.Classification{Summary: "S", Category: feedclip.CategoryGeneralAI, Author: "A"},
		},
		{
			name: "missing fields",
			raw:  `{}`,
			want: &feedclip.Classification{Category: feedclip.CategoryGeneralAI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := gemini.ParseClassification(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("returns EINTERNAL without JSON object", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseClassification("I cannot classify this post.")

		require.Error(t, err)
		assert.Equal(t, feedclip.EINTERNAL, feedclip.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for malformed object", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseClassification(`{"summary": "unterminated}`)

		require.Error(t, err)
		assert.Equal(t, feedclip.EINTERNAL, feedclip.ErrorCode(err))
	})
}
