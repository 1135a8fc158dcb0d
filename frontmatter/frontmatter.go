// Package frontmatter splits, parses, and re-serializes the YAML metadata
// block at the top of Markdown content files.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Meta is the typed frontmatter of a content file. Absent keys stay zero;
// nothing here is required.
type Meta struct {
	Template    string   `yaml:"template,omitempty"`
	Title       string   `yaml:"title,omitempty"`
	Slug        string   `yaml:"slug,omitempty"`
	Date        string   `yaml:"date,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	MainTag     string   `yaml:"mainTag,omitempty"`
	Description string   `yaml:"description,omitempty"`
	SocialImage string   `yaml:"socialImage,omitempty"`
	Draft       bool     `yaml:"draft,omitempty"`
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter: opening delimiter found but closing delimiter is missing")

var delim = []byte("---")

// Split separates `---` delimited YAML frontmatter from the Markdown body.
//
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input. Both \n and \r\n newline styles are accepted.
func Split(content []byte) (head, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := append(append([]byte{}, delim...), nl...)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		// Empty frontmatter block.
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := append(append(append([]byte{}, nl...), delim...), nl...)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter at EOF without a trailing newline still counts.
		tail := append(append([]byte{}, nl...), delim...)
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	head = rest[:idx+len(nl)]
	body = rest[idx+len(closeSeq):]
	return head, body, true, nil
}

// Parse unmarshals raw YAML frontmatter (without delimiters) into a Meta.
func Parse(head []byte) (Meta, error) {
	var m Meta
	if len(head) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(head, &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}

// Serialize assembles a full Markdown document from typed frontmatter and a
// body, using `---` delimiters and \n newlines.
func Serialize(m Meta, body []byte) ([]byte, error) {
	head, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.WriteString("---\n")
	out.Write(head)
	out.WriteString("---\n")
	out.Write(body)
	return out.Bytes(), nil
}

func detectNewline(content []byte) []byte {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return []byte("\r\n")
		}
		if content[i] == '\n' {
			break
		}
	}
	return []byte("\n")
}
