package main

import (
	"os"

	"github.com/fwojciec/feedclip"
	"github.com/fwojciec/feedclip/goquery"
	"gopkg.in/yaml.v3"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	enc := yaml.NewEncoder(deps.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(feedclip.DefaultPatterns()); err != nil {
		return err
	}
	return enc.Close()
}

// loadPatterns returns the default patterns overlaid with the keys set in
// the YAML file at path. An empty path yields the defaults.
func loadPatterns(path string) (*feedclip.Patterns, error) {
	p := feedclip.DefaultPatterns()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, feedclip.Errorf(feedclip.EINVALID, "cannot read patterns file: %v", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, feedclip.Errorf(feedclip.EINVALID, "invalid patterns file %s: %v", path, err)
	}
	if err := goquery.ValidatePatterns(p); err != nil {
		return nil, err
	}
	return p, nil
}
