package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/feedclip"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   feedclip.Fetcher
	Sender    feedclip.Sender
	Entries   feedclip.EntryService
	Processor feedclip.RecordProcessor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Clip     ClipCmd     `cmd:"" help:"Extract feed items from a page"`
	Serve    ServeCmd    `cmd:"" help:"Run the record processing endpoint"`
	Entries  EntriesCmd  `cmd:"" help:"List knowledge-base entries"`
	Patterns PatternsCmd `cmd:"" help:"Print the default feed patterns as YAML"`
}

// ClipCmd is the "clip" subcommand.
type ClipCmd struct {
	URL             string        `short:"u" help:"Page URL to fetch, or the page address of --file"`
	File            string        `short:"f" type:"existingfile" help:"Read page HTML from a file instead of fetching"`
	Target          []string      `short:"t" sep:"none" help:"CSS selector of start nodes (repeatable); defaults to every feed item"`
	JS              bool          `name:"js" help:"Render the page in a headless browser"`
	Timeout         time.Duration `default:"10s" help:"Fetch and delivery timeout"`
	UserDataDir     string        `help:"Browser profile directory used with --js"`
	Send            bool          `short:"s" help:"Deliver each record to the processing endpoint"`
	Endpoint        string        `default:"${endpoint}" env:"FEEDCLIP_ENDPOINT" help:"Processing endpoint URL"`
	Patterns        string        `short:"p" type:"existingfile" help:"YAML file overriding the default feed patterns"`
	PageURLFallback bool          `help:"Use the page address when a post body has no external link"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr            string `default:"${addr}" help:"Listen address"`
	DB              string `name:"db" default:"${db_path}" env:"FEEDCLIP_DB" help:"Knowledge-base database path"`
	Model           string `default:"${model}" help:"Gemini model used for classification"`
	RPM             int    `name:"rpm" default:"15" help:"Classification calls per minute (0 = unlimited)"`
	SummaryLanguage string `default:"${summary_language}" help:"Language of generated summaries"`
}

// EntriesCmd is the "entries" subcommand.
type EntriesCmd struct {
	DB     string `name:"db" default:"${db_path}" env:"FEEDCLIP_DB" help:"Knowledge-base database path"`
	Tab    string `help:"Only list entries filed under this tab"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of entries"`
	Format string `enum:"text,rss" default:"text" help:"Output format (text, rss)"`
}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct{}
