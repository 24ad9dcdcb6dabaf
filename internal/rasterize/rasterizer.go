package rasterize

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// ErrConversion marks a document that could not be rasterized
// (unreadable, corrupt, or empty input)
var ErrConversion = errors.New("document conversion failed")

// Rasterizer renders source documents into per-page PNG images using
// go-fitz (MuPDF)
type Rasterizer struct {
	logger *slog.Logger
}

// New creates a Rasterizer
func New(logger *slog.Logger) *Rasterizer {
	return &Rasterizer{logger: logger}
}

// Render converts the document at sourcePath into one PNG per page under
// destDir, named image-<n>.png with n starting at 1, and returns the
// ordered page paths.
func (r *Rasterizer) Render(ctx context.Context, sourcePath, destDir string) ([]string, error) {
	doc, err := fitz.New(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrConversion, sourcePath, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrConversion)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create page directory: %v", ErrConversion, err)
	}

	pages := make([]string, 0, pageCount)
	for pageNum := 0; pageNum < pageCount; pageNum++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.Image(pageNum)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to render page %d: %v", ErrConversion, pageNum+1, err)
		}

		pagePath := filepath.Join(destDir, fmt.Sprintf("image-%d.png", pageNum+1))
		out, err := os.Create(pagePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create page file %d: %v", ErrConversion, pageNum+1, err)
		}

		err = png.Encode(out, img)
		out.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode page %d: %v", ErrConversion, pageNum+1, err)
		}

		pages = append(pages, pagePath)
	}

	r.logger.Debug("Document rasterized",
		slog.String("source", sourcePath),
		slog.Int("pages", pageCount),
	)

	return pages, nil
}
