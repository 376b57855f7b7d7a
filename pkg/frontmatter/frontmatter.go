package frontmatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Sentinel errors for malformed frontmatter.
var (
	// ErrMissingFrontmatter is returned by MustParse when no frontmatter is found.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnterminated indicates an opening delimiter without a closing one.
	ErrUnterminated = errors.New("missing closing frontmatter delimiter")

	// ErrInvalidYAML indicates the header could not be decoded.
	ErrInvalidYAML = errors.New("invalid frontmatter YAML")
)

// Parse decodes optional frontmatter from r into matter and returns the body.
// Content without an opening delimiter is returned whole and matter is untouched.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but requires frontmatter to be present.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading frontmatter source")
	}

	header, body, found, err := Split(content)
	if err != nil {
		return nil, err
	}
	if !found {
		if required {
			return nil, ErrMissingFrontmatter
		}
		return content, nil
	}

	if err := yaml.Unmarshal(header, matter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return body, nil
}

// Split separates content into its YAML header and body. found is false when
// content does not start with a "---" line.
func Split(content []byte) (header, body []byte, found bool, err error) {
	rest, ok := cutLine(content)
	if !ok {
		return nil, content, false, nil
	}

	// The header ends at the first line that is exactly "---".
	offset := 0
	for offset <= len(rest) {
		line := rest[offset:]
		end := bytes.IndexByte(line, '\n')
		next := len(rest)
		if end >= 0 {
			line = line[:end]
			next = offset + end + 1
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return rest[:offset], rest[next:], true, nil
		}
		if end < 0 {
			break
		}
		offset = next
	}
	return nil, nil, false, ErrUnterminated
}

// cutLine reports whether content opens with a delimiter line and returns
// what follows it.
func cutLine(content []byte) ([]byte, bool) {
	for _, open := range []string{"---\n", "---\r\n"} {
		if after, ok := bytes.CutPrefix(content, []byte(open)); ok {
			return after, true
		}
	}
	return nil, false
}

// Format serializes matter as a YAML header followed by body.
// A blank line separates the two and the result always ends in a newline.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, errors.Wrap(err, "encoding frontmatter")
	}

	buf.WriteString("---\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}
