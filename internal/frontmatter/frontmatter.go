// Package frontmatter separates a leading YAML metadata block from the
// Markdown body and decodes the keys md2typst understands.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-md2typst/internal/yamlutil"
)

const delimiter = "---"

var (
	ErrUnterminated = errors.New("front matter must have opening and closing ---")
	ErrInvalidYAML  = errors.New("invalid front matter YAML")
)

// Metadata holds the front matter keys that affect conversion. Other keys are
// ignored.
type Metadata struct {
	Title   string `yaml:"title"`
	Author  string `yaml:"author"`
	Authors Names  `yaml:"authors"`
	Lang    string `yaml:"lang"`
	TOC     *bool  `yaml:"toc"`
}

// Names decodes from either a single string or a list of strings.
type Names []string

func (n *Names) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*n = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	*n = Names{single}
	return nil
}

// Parsed is a document split into metadata and body.
type Parsed struct {
	Meta Metadata
	// Raw is the YAML text between the delimiters, empty when absent.
	Raw  string
	Body string
}

// Split separates front matter from source. A document whose first line is
// not exactly "---" has no front matter and is returned whole as the body.
func Split(source string) (Parsed, error) {
	source = strings.TrimPrefix(source, "\ufeff")

	var (
		opened, closed bool
		yaml, body     []string
	)
	for line := range strings.Lines(source) {
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		switch {
		case !opened:
			if line != delimiter {
				return Parsed{Body: source}, nil
			}
			opened = true
		case !closed && line == delimiter:
			closed = true
		case !closed:
			yaml = append(yaml, line)
		default:
			body = append(body, line)
		}
	}

	if !opened {
		return Parsed{Body: source}, nil
	}
	if !closed {
		return Parsed{}, ErrUnterminated
	}

	parsed := Parsed{Body: strings.Join(body, "\n")}
	if len(yaml) > 0 {
		parsed.Raw = strings.Join(yaml, "\n") + "\n"
	}
	if strings.TrimSpace(parsed.Raw) == "" {
		return parsed, nil
	}

	if err := yamlutil.Decode([]byte(parsed.Raw), &parsed.Meta); err != nil {
		return Parsed{}, fmt.Errorf("%w: %v", ErrInvalidYAML, yamlutil.Describe(err))
	}
	return parsed, nil
}
