package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded résumé for the lifetime of one request.
type Document struct {
	ID               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFileName string    `json:"original_filename"`
	FilePath         string    `json:"file_path"`
	Size             int64     `json:"size"`
	Data             []byte    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}
