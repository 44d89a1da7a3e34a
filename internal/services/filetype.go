package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"alfredoptarigan/resume-insights/internal/models"
)

const pdfMIME = "application/pdf"

// DetectDocumentType accepts only PDFs, checked by extension and magic bytes.
func DetectDocumentType(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return "", models.NewPipelineError(models.ErrUnsupportedFileType,
			"Unsupported file type. Only .pdf is supported.",
			fmt.Errorf("invalid file extension: %q", ext))
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is(pdfMIME) {
		return "", models.NewPipelineError(models.ErrUnsupportedFileType,
			"Unsupported file type. Only .pdf is supported.",
			fmt.Errorf("content detected as %s", mtype.String()))
	}

	return mtype.String(), nil
}
