package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	Extractor
	ExtractContent(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractContent(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractContent concatenates the text of every page in order, with nothing
// inserted between pages.
func (p *pdfParserService) ExtractContent(data []byte) (content *PDFContent, err error) {
	// The decoder panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("%w: pdf decoder panic: %v", ErrCorruptDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrCorruptDocument, err)
	}

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrCorruptDocument)
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read page %d: %v", ErrCorruptDocument, pageIndex, err)
		}

		textBuilder.WriteString(text)
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no text content found in PDF", ErrCorruptDocument)
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
	}, nil
}
