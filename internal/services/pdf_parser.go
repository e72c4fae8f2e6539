package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractFile(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText returns the plain text of every page joined by newlines and
// trimmed. A readable PDF without text yields "" and no error; anything that
// cannot be opened as a PDF is an extraction error.
func (p *pdfParserService) ExtractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", newExtractionError("Failed to parse PDF.", errors.New("uploaded file is empty or unreadable"))
	}

	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = newExtractionError("Failed to parse PDF.", fmt.Errorf("malformed PDF: %v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newExtractionError("Failed to parse PDF.", fmt.Errorf("failed to open PDF: %w", err))
	}

	totalPage := r.NumPage()
	pages := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", newExtractionError("Failed to parse PDF.", fmt.Errorf("failed to read page %d: %w", pageIndex, err))
		}
		pages = append(pages, pageText)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

func (p *pdfParserService) ExtractFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", newExtractionError("Failed to read PDF file.", err)
	}
	return p.ExtractText(data)
}
