package services

import (
	"errors"
	"testing"

	"alfredoptarigan/resume-insights/internal/models"
)

func TestDetectDocumentType(t *testing.T) {
	pdfBytes := buildPDF("Alice")

	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  bool
	}{
		{name: "pdf", filename: "cv.pdf", data: pdfBytes},
		{name: "upper case extension", filename: "CV.PDF", data: pdfBytes},
		{name: "docx extension", filename: "cv.docx", data: pdfBytes, wantErr: true},
		{name: "no extension", filename: "cv", data: pdfBytes, wantErr: true},
		{name: "renamed text file", filename: "cv.pdf", data: []byte("hello, I am a resume"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := DetectDocumentType(tt.filename, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectDocumentType() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, models.KindError(models.ErrUnsupportedFileType)) {
					t.Errorf("error kind = %v, want UnsupportedFileType", err)
				}
				return
			}
			if mime != "application/pdf" {
				t.Errorf("mime = %q", mime)
			}
		})
	}
}
