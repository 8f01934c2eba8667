package extractor

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"uigen-bridge/internal/application/port/output"
	"uigen-bridge/internal/domain/entity"
)

// documentJS snapshots the rendered document for structural scraping.
const documentJS = `() => document.body ? document.body.outerHTML : ''`

// minProbeCodeLen filters out inline fragments like `npm i` when the
// snapshot is used as a completion probe.
const minProbeCodeLen = 40

// DOMStrategy scrapes code-bearing elements straight out of the rendered
// document: every <pre><code> block, with the filename taken from the
// block's data attributes when the site provides one.
type DOMStrategy struct {
	driver output.PageDriver
	logger output.LoggerPort
}

func NewDOM(driver output.PageDriver, logger output.LoggerPort) *DOMStrategy {
	return &DOMStrategy{driver: driver, logger: logger}
}

func (s *DOMStrategy) Name() string { return "dom" }

func (s *DOMStrategy) Extract(ctx context.Context) (*entity.GenerationResult, error) {
	doc, err := s.driver.EvalQuery(ctx, documentJS)
	if err != nil {
		return nil, &entity.DriverError{Op: "snapshot document", Err: err}
	}

	blocks := ParseCodeBlocks(doc)
	if len(blocks) == 0 {
		return nil, &entity.ExtractionError{Attempts: 1}
	}

	result := entity.NewGenerationResult()
	for _, b := range blocks {
		result.Add(b.Name, b.Content)
	}
	return result, nil
}

// Probe reports whether the page already shows literal code content. The
// poller uses this as a positive completion signal when no marker of any
// kind is visible.
func (s *DOMStrategy) Probe(ctx context.Context) bool {
	doc, err := s.driver.EvalQuery(ctx, documentJS)
	if err != nil {
		return false
	}
	for _, b := range ParseCodeBlocks(doc) {
		if len(strings.TrimSpace(b.Content)) >= minProbeCodeLen {
			return true
		}
	}
	return false
}

// ParseCodeBlocks walks the document tree and collects the text of every
// code block together with whatever filename the markup carries.
func ParseCodeBlocks(rawHTML string) []entity.GeneratedFile {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var blocks []entity.GeneratedFile
	collectCodeBlocks(doc, &blocks)
	return blocks
}

func collectCodeBlocks(n *html.Node, blocks *[]entity.GeneratedFile) {
	if n.Type == html.ElementNode && n.Data == "pre" {
		content := nodeText(n)
		if strings.TrimSpace(content) != "" {
			*blocks = append(*blocks, entity.GeneratedFile{
				Name:    blockFilename(n),
				Content: content,
			})
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectCodeBlocks(c, blocks)
	}
}

// blockFilename looks for a filename on the <pre>, its <code> child, or
// the nearest ancestor. Empty means unresolved; the result assigns the
// fallback name in that case.
func blockFilename(n *html.Node) string {
	for node := n; node != nil; node = node.Parent {
		if name := filenameAttr(node); name != "" {
			return name
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "code" {
			if name := filenameAttr(c); name != "" {
				return name
			}
		}
	}
	return ""
}

func filenameAttr(n *html.Node) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "data-filename", "data-file-name", "data-file":
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
