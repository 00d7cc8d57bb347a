// Package metadata extracts the informal self-description a module file
// carries in its header comments.
//
// Extraction is a heuristic, not a parser. Only the leading block of comment
// lines is read, and only the labels Description, Author, Version and
// Dependencies (case-sensitive, "# Label: value") are recognized. A malformed
// entry (empty value, control characters, invalid UTF-8) leaves its field
// blank instead of storing a partial value. Nothing a file contains can make
// Extract fail: every problem degrades to blank fields plus a Degraded flag.
package metadata
