package filetype

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Detector handles file type detection using magic bytes
type Detector struct{}

// New creates a new file type detector
func New() *Detector {
	return &Detector{}
}

// IsPDF reports whether the file at filePath is a PDF, based on magic
// bytes rather than the filename.
func (d *Detector) IsPDF(filePath string) (bool, error) {
	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to detect file type: %w", err)
	}

	log.Debug().Str("mime", mtype.String()).Str("file", filePath).Msg("detected file type")

	return mtype.Is("application/pdf"), nil
}
