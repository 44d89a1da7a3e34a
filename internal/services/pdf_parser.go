package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

type PDFParserService interface {
	ExtractText(data []byte) (*PDFContent, error)
	ExtractTextFromFile(filePath string) (*PDFContent, error)
}

// PDFContent is the text layer of one document. Pages holds only the pages
// that produced text, in document order.
type PDFContent struct {
	Text      string
	Pages     []string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractTextFromFile(filePath string) (*PDFContent, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return p.ExtractText(data)
}

func (p *pdfParserService) ExtractText(data []byte) (content *PDFContent, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Err(err).Int("page", pageIndex).Msg("pdf.page.text_error")
			continue
		}
		// GetPlainText opens every page with a newline.
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		pages = append(pages, text)
	}

	return &PDFContent{
		Text:      strings.Join(pages, "\n"),
		Pages:     pages,
		PageCount: totalPage,
	}, nil
}
