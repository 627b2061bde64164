package render

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/rs/zerolog/log"
)

// Error marks a file as unrenderable (unreadable or corrupt PDF). The
// driver skips the file and continues with the rest of the input.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("render %s: %v", e.Path, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Page is one rasterized PDF page.
type Page struct {
	JPEG   []byte
	Width  int
	Height int
}

// Document yields rasterized pages in page order. Pages are rendered
// lazily; re-rendering a document requires a fresh Open.
type Document interface {
	NumPages() int
	RenderPage(pageNum int) (Page, error)
	Close() error
}

// Opener opens a PDF path into a Document. The fitz-backed implementation
// below is the default; tests swap in fakes.
type Opener interface {
	Open(path string) (Document, error)
}

// FitzOpener opens PDFs with go-fitz and renders pages at the configured
// DPI. Page counts are cross-checked against pdfcpu before rendering so
// corrupt files fail up front rather than mid-document.
type FitzOpener struct {
	DPI         int
	JPEGQuality int
	ColorMode   ColorMode
}

func (o *FitzOpener) Open(path string) (Document, error) {
	pages, err := api.PageCountFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("pdf page count failed: %w", err)}
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}

	if n := doc.NumPage(); n != pages {
		log.Warn().Str("pdf", path).Int("pdfcpu", pages).Int("fitz", n).Msg("page count mismatch between pdfcpu and fitz")
		pages = n
	}

	quality := o.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &fitzDocument{
		doc:     doc,
		path:    path,
		pages:   pages,
		dpi:     o.DPI,
		quality: quality,
		color:   o.ColorMode,
	}, nil
}

type fitzDocument struct {
	doc     *fitz.Document
	path    string
	pages   int
	dpi     int
	quality int
	color   ColorMode
}

func (d *fitzDocument) NumPages() int { return d.pages }

// RenderPage rasterizes the 1-based pageNum at the configured DPI
// (go-fitz uses 0-based indexing).
func (d *fitzDocument) RenderPage(pageNum int) (Page, error) {
	if pageNum < 1 || pageNum > d.pages {
		return Page{}, &Error{Path: d.path, Err: fmt.Errorf("page %d out of range (document has %d pages)", pageNum, d.pages)}
	}

	img, err := d.doc.ImageDPI(pageNum-1, float64(d.dpi))
	if err != nil {
		return Page{}, &Error{Path: d.path, Err: fmt.Errorf("failed to render page %d: %w", pageNum, err)}
	}

	jpegBytes, w, h, err := EncodeJPEG(img, d.quality, d.color)
	if err != nil {
		return Page{}, &Error{Path: d.path, Err: err}
	}

	log.Debug().
		Str("pdf", d.path).
		Int("page", pageNum).
		Int("width", w).
		Int("height", h).
		Int("jpeg_size", len(jpegBytes)).
		Int("dpi", d.dpi).
		Msg("rendered page")

	return Page{JPEG: jpegBytes, Width: w, Height: h}, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
