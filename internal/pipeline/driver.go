package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/local/tabletitles/internal/ai"
	"github.com/local/tabletitles/internal/extract"
	"github.com/local/tabletitles/internal/filetype"
	"github.com/local/tabletitles/internal/metrics"
	"github.com/local/tabletitles/internal/render"
)

// Dependencies holds the pipeline's collaborators.
type Dependencies struct {
	Opener   render.Opener
	Client   ai.Client
	Detector *filetype.Detector
}

// Driver walks the input directory and runs the per-page extraction
// pipeline: render -> model call -> parse -> accumulate. Single-threaded,
// one file at a time, one network round trip per page.
type Driver struct {
	deps    Dependencies
	model   string
	timeout time.Duration // per-request deadline; 0 means none
	log     zerolog.Logger
}

func New(deps Dependencies, model string, timeout time.Duration, logger zerolog.Logger) *Driver {
	return &Driver{deps: deps, model: model, timeout: timeout, log: logger}
}

// Run processes every PDF in inputDir (non-recursive) and returns the
// accumulated results. A file that fails to render is logged and skipped;
// a model call failure aborts the run with the results collected so far.
func (d *Driver) Run(ctx context.Context, inputDir string) (extract.ResultSet, error) {
	files, err := d.listPDFs(inputDir)
	if err != nil {
		return nil, err
	}
	d.log.Info().Int("count", len(files)).Str("dir", inputDir).Msg("found PDF files to process")

	results := extract.ResultSet{}
	for _, path := range files {
		d.log.Info().Str("file", filepath.Base(path)).Msg("processing PDF")

		fileResults, err := d.processFile(ctx, path)
		if err != nil {
			var rerr *render.Error
			if errors.As(err, &rerr) {
				// Corrupt or unreadable PDF: skip the file, keep the run going.
				d.log.Error().Err(err).Str("file", filepath.Base(path)).Msg("failed to render PDF, skipping file")
				metrics.IncFile("render_error")
				continue
			}
			return results, err
		}

		metrics.IncFile("success")
		results = results.Append(fileResults...)
		d.log.Info().Str("file", filepath.Base(path)).Int("results", len(fileResults)).Msg("finished PDF")
	}

	return results, nil
}

// processFile renders and extracts every page of one PDF. A render failure
// on any page surfaces as a render.Error and the file's partial results
// are discarded.
func (d *Driver) processFile(ctx context.Context, path string) ([]extract.Result, error) {
	doc, err := d.deps.Opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	var out []extract.Result
	for page := 1; page <= doc.NumPages(); page++ {
		start := time.Now()
		p, err := doc.RenderPage(page)
		if err != nil {
			return nil, err
		}
		metrics.ObserveRender(time.Since(start))

		pageResults, err := d.extractPage(ctx, path, page, p)
		if err != nil {
			return nil, err
		}
		out = append(out, pageResults...)
	}
	return out, nil
}

// extractPage sends one rendered page to the model and parses the answer.
// An unrecognized answer is recovered locally with the Unknown placeholder;
// a transport/API failure is not.
func (d *Driver) extractPage(ctx context.Context, path string, page int, p render.Page) ([]extract.Result, error) {
	req := ai.Request{
		PageNumber:  page,
		Model:       d.model,
		ImageBase64: render.EncodeToBase64(p.JPEG),
		ImageMIME:   render.JPEGMIMEType,
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := d.deps.Client.ExtractTables(callCtx, req)
	dur := time.Since(start)
	if err != nil {
		metrics.ObserveProvider(d.deps.Client.Name(), d.model, "error", dur)
		return nil, &ai.Error{Provider: d.deps.Client.Name(), Page: page, Err: err}
	}
	metrics.ObserveProvider(d.deps.Client.Name(), d.model, "success", dur)

	tables, perr := extract.ParseResponse(resp.Text)
	if perr != nil {
		d.log.Warn().Err(perr).Str("file", filepath.Base(path)).Int("page", page).Msg("unrecognized model response, recording placeholder")
		metrics.IncPage("unrecognized")
	} else {
		metrics.IncPage("extracted")
		metrics.AddTables(len(tables))
	}

	d.log.Debug().
		Str("file", filepath.Base(path)).
		Int("page", page).
		Int("tables", len(tables)).
		Int("tokens_in", resp.TokensIn).
		Int("tokens_out", resp.TokensOut).
		Dur("duration", dur).
		Msg("extracted page")

	return extract.ResultsForPage(tables, page), nil
}

// listPDFs enumerates PDF files in dir, non-recursive, in directory name
// order. A file counts as a PDF when both the .pdf extension and the magic
// bytes agree.
func (d *Driver) listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		isPDF, err := d.deps.Detector.IsPDF(path)
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name()).Msg("file type detection failed, skipping")
			continue
		}
		if !isPDF {
			log.Warn().Str("file", e.Name()).Msg("file has .pdf extension but is not a PDF, skipping")
			continue
		}
		files = append(files, path)
	}
	return files, nil
}
