package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrCorruptDocument   = errors.New("corrupt document")
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Extractor turns raw document bytes into plain text.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

type ExtractorRegistry struct {
	extractors map[Format]Extractor
}

// NewExtractorRegistry returns a registry with the PDF and DOCX extractors.
func NewExtractorRegistry() *ExtractorRegistry {
	r := &ExtractorRegistry{extractors: make(map[Format]Extractor)}
	r.Register(FormatPDF, NewPDFParserService())
	r.Register(FormatDOCX, NewDOCXParserService())
	return r
}

// Register binds an extractor to a format tag, replacing any previous one.
// It is meant to be called during startup, before the registry is shared.
func (r *ExtractorRegistry) Register(format Format, extractor Extractor) {
	r.extractors[Format(strings.ToLower(string(format)))] = extractor
}

func (r *ExtractorRegistry) Supported() []Format {
	formats := make([]Format, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func (r *ExtractorRegistry) IsSupported(filename string) bool {
	_, ok := r.extractors[FormatFromFilename(filename)]
	return ok
}

// Extract dispatches on the file extension. Unsupported extensions fail
// before any bytes are parsed.
func (r *ExtractorRegistry) Extract(filename string, data []byte) (string, error) {
	format := FormatFromFilename(filename)
	extractor, ok := r.extractors[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}

	text, err := extractor.ExtractText(data)
	if err != nil {
		if errors.Is(err, ErrCorruptDocument) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	return text, nil
}

func FormatFromFilename(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	return Format(strings.TrimPrefix(ext, "."))
}
