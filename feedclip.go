// Package feedclip extracts a structured record (author, body text and
// canonical URL) from a single item of a rendered social-feed document,
// starting from any node inside that item, and hands the record to a
// processing endpoint that files it into a knowledge base.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package feedclip
