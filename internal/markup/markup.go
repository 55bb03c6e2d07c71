// Package markup converts authored Markdown documents into content payloads.
// A document carries optional YAML front matter delimited by "---" lines,
// followed by a Markdown body that is rendered to HTML.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// FrontMatter holds the metadata block of an authored document.
type FrontMatter struct {
	Title   string   `yaml:"title"`
	Kind    string   `yaml:"kind"`
	Tags    []string `yaml:"tags"`
	Summary string   `yaml:"summary"`
}

// Document is a parsed and rendered authoring source file.
type Document struct {
	Meta FrontMatter
	HTML string
}

var renderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		highlighting.NewHighlighting(
			highlighting.WithStyle("nord"),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// Parse splits front matter from the Markdown body and renders the body
// to HTML. Documents without a front matter block are rendered whole with
// empty metadata.
func Parse(source []byte) (*Document, error) {
	meta, body, err := splitFrontMatter(source)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderer.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	return &Document{Meta: meta, HTML: buf.String()}, nil
}

// splitFrontMatter extracts the YAML metadata block, if present.
func splitFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	trimmed := bytes.TrimLeft(source, "\r\n")
	if !bytes.HasPrefix(trimmed, []byte(frontMatterDelim)) {
		return meta, source, nil
	}

	rest := trimmed[len(frontMatterDelim):]
	if len(rest) == 0 || (rest[0] != '\n' && !bytes.HasPrefix(rest, []byte("\r\n"))) {
		return meta, source, nil
	}

	idx := bytes.Index(rest, []byte("\n"+frontMatterDelim))
	if idx < 0 {
		return meta, nil, fmt.Errorf("unterminated front matter block")
	}

	block := rest[:idx]
	if err := yaml.Unmarshal(block, &meta); err != nil {
		return meta, nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	body := rest[idx+len("\n"+frontMatterDelim):]
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Kind = strings.TrimSpace(meta.Kind)
	return meta, body, nil
}
