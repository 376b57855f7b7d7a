// Package frontmatter reads and writes YAML frontmatter on Markdown files,
// as used by Claude Code agent definitions.
//
// Frontmatter is delimited by lines containing only "---" at the start and
// end of the header. The header is decoded into a caller-supplied struct and
// the remainder is returned as the body:
//
//	var meta struct {
//		Name string `yaml:"name"`
//	}
//	body, err := frontmatter.Parse(r, &meta)
//
// Both LF and CRLF line endings are accepted.
package frontmatter
