// Package markdown extracts documents from standalone markdown files.
//
// A file may open with a metadata header delimited by "---" lines. The
// header is parsed as a flat YAML mapping; scalar values become document
// metadata and everything else is dropped.
package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// headerDelimiter opens and closes the metadata header.
const headerDelimiter = "---"

// headingPattern matches a level-1 heading line. Only horizontal
// whitespace may follow the '#' so a match never spans lines.
var headingPattern = regexp.MustCompile(`(?m)^#[ \t]+(.+)$`)

// Result is the outcome of extracting one markdown file.
type Result struct {
	Document domain.Document

	// HeaderErr is set when a header was present but could not be parsed.
	// The header is still excluded from the body and the document is
	// produced without metadata.
	HeaderErr error
}

// Extract builds a document from the markdown text of the file at path.
// The id is assigned against existing, which is grown by the new id.
func Extract(path, content string, existing domain.IDSet) Result {
	header, bodyStart, found := splitHeader(content)

	var (
		meta      domain.Metadata
		headerErr error
	)
	if found {
		meta, headerErr = parseHeader(header)
		if headerErr != nil {
			headerErr = &domain.ParseError{Subject: path, Err: headerErr}
		}
	}

	body := content[bodyStart:]
	title := Title(meta, body, path)

	return Result{
		Document: domain.Document{
			ID:      domain.AssignID(title, existing),
			Title:   title,
			Content: body,
			Source: domain.Source{
				Kind:      domain.SourceMarkdownFile,
				Path:      path,
				Line:      1,
				ByteRange: &domain.ByteRange{Start: bodyStart, End: len(content)},
			},
			Metadata: meta,
		},
		HeaderErr: headerErr,
	}
}

// Title picks the document title: the header title, then the first
// level-1 heading (without any trailing #tag suffix), then the file stem.
func Title(meta domain.Metadata, body, path string) string {
	if t := strings.TrimSpace(meta["title"]); t != "" {
		return t
	}
	if t := FirstHeading(body); t != "" {
		return t
	}
	return domain.FileStem(path)
}

// FirstHeading returns the text of the first non-blank level-1 heading in text,
// or "" when there is none.
func FirstHeading(text string) string {
	for _, m := range headingPattern.FindAllStringSubmatch(text, -1) {
		heading := m[1]
		if i := strings.IndexByte(heading, '#'); i >= 0 {
			heading = heading[:i]
		}
		if heading = strings.TrimSpace(heading); heading != "" {
			return heading
		}
	}
	return ""
}

// splitHeader locates a leading "---" header. It returns the header text,
// the byte offset where the body starts and whether a header was found.
// Without a closing delimiter the whole file is body.
func splitHeader(content string) (header string, bodyStart int, found bool) {
	if !strings.HasPrefix(content, headerDelimiter) {
		return "", 0, false
	}

	firstNL := strings.IndexByte(content, '\n')
	if firstNL < 0 {
		return "", 0, false
	}

	offset := firstNL + 1
	for offset <= len(content) {
		end := strings.IndexByte(content[offset:], '\n')
		lineEnd := len(content)
		next := len(content)
		if end >= 0 {
			lineEnd = offset + end
			next = lineEnd + 1
		}

		if strings.TrimSpace(content[offset:lineEnd]) == headerDelimiter {
			return content[firstNL+1 : offset], next, true
		}
		if end < 0 {
			break
		}
		offset = next
	}
	return "", 0, false
}

// parseHeader decodes the header as a flat mapping of scalars.
func parseHeader(header string) (domain.Metadata, error) {
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(header), &raw); err != nil {
		return nil, fmt.Errorf("metadata header: %w", err)
	}

	meta := make(domain.Metadata, len(raw))
	for key, value := range raw {
		if s, ok := scalarString(value); ok {
			meta[key] = s
		}
	}
	if len(meta) == 0 {
		return nil, nil
	}
	return meta, nil
}

// scalarString renders a YAML scalar as a string.
// Sequences, mappings and nulls are rejected.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case time.Time:
		return val.Format(time.RFC3339), true
	default:
		return "", false
	}
}
