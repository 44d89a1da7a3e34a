package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-insights/internal/models"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader) (*models.Document, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	// Release drops the stored copy once a run is finished, unless uploads
	// are configured to be kept.
	Release(doc *models.Document)
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	keepUploads bool
}

func NewStorageService(uploadPath string, keepUploads bool) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		keepUploads: keepUploads,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile writes the upload under a generated name and returns it with its
// bytes loaded. The extension is kept only for naming; type checks happen
// in the pipeline.
func (s *storageService) SaveFile(file *multipart.FileHeader) (*models.Document, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))

	// Generate the unique filename
	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &models.Document{
		ID:               uuid.New(),
		Filename:         uniqueFilename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Size:             int64(len(data)),
		Data:             data,
		CreatedAt:        time.Now(),
	}, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *storageService) Release(doc *models.Document) {
	if doc == nil || s.keepUploads {
		return
	}
	if err := s.DeleteFile(doc.Filename); err != nil {
		log.Warn().Err(err).Str("filename", doc.Filename).Msg("storage.delete_failed")
	}
}
