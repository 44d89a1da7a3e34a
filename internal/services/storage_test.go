package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File[field][0]
}

func TestStorageSaveAndRelease(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir, false)
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir() error = %v", err)
	}

	content := buildPDF("Alice")
	doc, err := storage.SaveFile(multipartFile(t, "file", "My CV.PDF", content))
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	if doc.OriginalFileName != "My CV.PDF" {
		t.Errorf("OriginalFileName = %q", doc.OriginalFileName)
	}
	if !strings.HasPrefix(doc.Filename, "resume_") || !strings.HasSuffix(doc.Filename, ".pdf") {
		t.Errorf("Filename = %q", doc.Filename)
	}
	if doc.Size != int64(len(content)) || !bytes.Equal(doc.Data, content) {
		t.Errorf("document bytes do not match upload")
	}
	if doc.FilePath != storage.GetFilePath(doc.Filename) {
		t.Errorf("FilePath = %q", doc.FilePath)
	}

	onDisk, err := os.ReadFile(doc.FilePath)
	if err != nil || !bytes.Equal(onDisk, content) {
		t.Fatalf("stored file mismatch: %v", err)
	}

	storage.Release(doc)
	if _, err := os.Stat(doc.FilePath); !os.IsNotExist(err) {
		t.Errorf("file still present after Release: %v", err)
	}
}

func TestStorageKeepUploads(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir, true)

	doc, err := storage.SaveFile(multipartFile(t, "file", "cv.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	storage.Release(doc)
	if _, err := os.Stat(doc.FilePath); err != nil {
		t.Errorf("file removed despite keepUploads: %v", err)
	}

	if err := storage.DeleteFile(doc.Filename); err != nil {
		t.Errorf("DeleteFile() error = %v", err)
	}
	if err := storage.DeleteFile(doc.Filename); err == nil {
		t.Error("second DeleteFile() should fail")
	}
}
