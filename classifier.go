package feedclip

import (
	"context"
	"strings"
)

// Category is the topic a saved post is filed under.
type Category string

// Supported categories.
const (
	CategoryMCP        Category = "MCP"
	CategoryRAG        Category = "RAG"
	CategoryRepo       Category = "Repo"
	CategoryTool       Category = "Tool"
	CategoryAutomation Category = "Automation"
	CategoryLearning   Category = "Learning"
	CategoryTrend      Category = "Trend"
	CategoryGeneralAI  Category = "General_AI"
)

// Categories lists every supported category in prompt order.
var Categories = []Category{
	CategoryMCP,
	CategoryRAG,
	CategoryRepo,
	CategoryTool,
	CategoryAutomation,
	CategoryLearning,
	CategoryTrend,
	CategoryGeneralAI,
}

// DefaultTab receives entries whose category has no dedicated tab.
const DefaultTab = "AI"

var categoryTabs = map[Category]string{
	CategoryMCP:        "MCP",
	CategoryRAG:        "RAG",
	CategoryRepo:       "Repos in github",
	CategoryTool:       "Tools",
	CategoryAutomation: "Automation flow",
	CategoryLearning:   "Learning",
	CategoryGeneralAI:  "AI",
	CategoryTrend:      "Trends",
	"Trends":           "Trends",
}

// TabForCategory returns the knowledge-base tab a category is filed under.
// Unknown categories go to DefaultTab.
func TabForCategory(c Category) string {
	if tab, ok := categoryTabs[c]; ok {
		return tab
	}
	return DefaultTab
}

// ParseCategory maps free-form classifier output onto a supported category.
// Matching ignores case and surrounding whitespace; anything unrecognized
// becomes CategoryGeneralAI.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	if strings.EqualFold(s, "Trends") {
		return CategoryTrend
	}
	return CategoryGeneralAI
}

// Classification is a classifier's verdict about a record.
type Classification struct {
	Summary  string   `json:"summary"`
	Category Category `json:"category"`
	Author   string   `json:"author"`
}

// Classifier summarizes and categorizes records.
type Classifier interface {
	Classify(ctx context.Context, rec *Record) (*Classification, error)
}
