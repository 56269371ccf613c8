// Package gemini implements feedclip.Classifier using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/feedclip"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultSummaryLanguage is the language summaries are written in.
const DefaultSummaryLanguage = "Hebrew"

// Ensure Classifier implements feedclip.Classifier at compile time.
var _ feedclip.Classifier = (*Classifier)(nil)

// Classifier summarizes and categorizes records with Gemini.
type Classifier struct {
	client   *genai.Client
	model    string
	language string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel sets the Gemini model. Empty values are ignored.
func WithModel(model string) Option {
	return func(c *Classifier) {
		if model != "" {
			c.model = model
		}
	}
}

// WithSummaryLanguage sets the language summaries are written in.
// Empty values are ignored.
func WithSummaryLanguage(language string) Option {
	return func(c *Classifier) {
		if language != "" {
			c.language = language
		}
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, opts ...Option) *Classifier {
	c := &Classifier{
		client:   client,
		model:    DefaultModel,
		language: DefaultSummaryLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured Gemini model.
func (c *Classifier) Model() string {
	return c.model
}

// Classify asks Gemini for a summary, a category and the post's author.
func (c *Classifier) Classify(ctx context.Context, rec *feedclip.Record) (*feedclip.Classification, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if c.client == nil {
		return nil, feedclip.Errorf(feedclip.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(rec)}},
		}},
		BuildConfig(c.language),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, feedclip.Errorf(feedclip.EINTERNAL, "gemini returned nil result")
	}

	return ParseClassification(result.Text())
}

// BuildConfig returns the GenerateContentConfig for classification calls.
func BuildConfig(language string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction(language)}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

func systemInstruction(language string) string {
	names := make([]string, len(feedclip.Categories))
	for i, c := range feedclip.Categories {
		names[i] = fmt.Sprintf("'%s'", c)
	}

	return fmt.Sprintf(`Analyze this LinkedIn post.

Summary: Write a %s summary focusing on the function/value (max 2 sentences).
Category: Classify strictly into ONE of these: [%s].
Author: Extract the author name from the post content if possible, otherwise use the provided default.

Output ONLY a raw JSON object, not wrapped in a markdown code block:
{ "summary": "...", "category": "...", "author": "..." }`, language, strings.Join(names, ", "))
}

// BuildUserPrompt builds the user prompt carrying the record.
func BuildUserPrompt(rec *feedclip.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Input Post Author: %s\n", rec.Author)
	fmt.Fprintf(&sb, "Input Post URL: %s\n", rec.URL)
	fmt.Fprintf(&sb, "Input Post Text:\n%s", rec.Text)
	return sb.String()
}

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseClassification decodes a model response. Markdown code fences are
// stripped; if the remainder is not JSON, the first {...} span is tried.
// Unknown categories become CategoryGeneralAI.
func ParseClassification(raw string) (*feedclip.Classification, error) {
	text := stripFence(strings.TrimSpace(raw))

	var out struct {
		Summary  string `json:"summary"`
		Category string `json:"category"`
		Author   string `json:"author"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		span := objectPattern.FindString(text)
		if span == "" {
			return nil, feedclip.Errorf(feedclip.EINTERNAL, "no JSON object in classifier response")
		}
		if err := json.Unmarshal([]byte(span), &out); err != nil {
			return nil, feedclip.Errorf(feedclip.EINTERNAL, "invalid classifier response: %v", err)
		}
	}

	return &feedclip.Classification{
		Summary:  strings.TrimSpace(out.Summary),
		Category: feedclip.ParseCategory(out.Category),
		Author:   strings.TrimSpace(out.Author),
	}, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
