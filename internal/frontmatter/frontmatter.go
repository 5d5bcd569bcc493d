// Package frontmatter reads and writes Markdown pages that carry a YAML
// front matter block between --- delimiters, as Jekyll expects.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delim = "---\n"

// Parse splits a page into its front matter (raw YAML) and body. Leading
// blank lines are ignored. Returns an error if either delimiter is absent.
func Parse(data []byte) (fm []byte, body []byte, err error) {
	data = bytes.TrimLeft(data, " \t\r\n")
	if !bytes.HasPrefix(data, []byte(delim)) {
		return nil, nil, fmt.Errorf("frontmatter: missing opening --- delimiter")
	}
	rest := data[len(delim):]
	if bytes.HasPrefix(rest, []byte("---")) {
		return nil, trimDelimLine(rest[3:]), nil
	}
	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return nil, nil, fmt.Errorf("frontmatter: missing closing --- delimiter")
	}
	return rest[:idx+1], trimDelimLine(rest[idx+4:]), nil
}

func trimDelimLine(tail []byte) []byte {
	if len(tail) > 0 && tail[0] == '\n' {
		return tail[1:]
	}
	return tail
}

// Has reports whether data starts with a complete front matter block.
func Has(data []byte) bool {
	_, _, err := Parse(data)
	return err == nil
}

// Decode parses the front matter of data into v and returns the body.
func Decode(data []byte, v any) ([]byte, error) {
	fm, body, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(fm, v); err != nil {
		return nil, fmt.Errorf("frontmatter: unmarshal: %w", err)
	}
	return body, nil
}

// Write marshals v as front matter followed by body.
func Write(v any, body []byte) ([]byte, error) {
	fm, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: marshal: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(delim)
	buf.Write(fm)
	buf.WriteString(delim)
	buf.Write(body)
	return buf.Bytes(), nil
}

// Prepend adds v as front matter unless body already has one, in which
// case body is returned unchanged.
func Prepend(v any, body []byte) ([]byte, error) {
	if Has(body) {
		return body, nil
	}
	return Write(v, body)
}
