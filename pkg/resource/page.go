package resource

import (
	"context"
	"fmt"

	"gridkit/pkg/dom"

	"go.uber.org/zap"
)

// LoadPage fetches uri, inlines every linked stylesheet and external script
// and lays the page out in a viewport of the given size. Assets that fail
// to load are logged and skipped.
func LoadPage(ctx context.Context, f Fetcher, uri string, width, height float64, logger *zap.Logger) (*dom.Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	markup, err := FetchText(ctx, f, uri, "html")
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	doc := dom.NewDocument(width, height)
	if err := dom.ParseFragment(doc.Body(), markup); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", uri, err)
	}

	for _, link := range dom.QuerySelectorAll(doc.Root(), `link[rel=stylesheet]`) {
		href, _ := link.GetAttribute("href")
		text, err := FetchText(ctx, f, href, "css")
		if err != nil {
			logger.Warn("skipping stylesheet", zap.String("href", href), zap.Error(err))
			continue
		}
		style := dom.NewElement("style", map[string]string{"data-href": href})
		style.Text = text
		link.Parent.InsertBefore(style, link)
		link.Remove()
	}

	for _, script := range dom.QuerySelectorAll(doc.Root(), `script[src]`) {
		src, _ := script.GetAttribute("src")
		text, err := FetchText(ctx, f, src, "javascript")
		if err != nil {
			logger.Warn("skipping script", zap.String("src", src), zap.Error(err))
			continue
		}
		script.Text = text
	}

	doc.Layout()
	logger.Debug("page loaded", zap.String("uri", uri))
	return doc, nil
}
