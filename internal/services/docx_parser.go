package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

type docxParserService struct{}

func NewDOCXParserService() Extractor {
	return &docxParserService{}
}

// ExtractText reads the body part only. Headers, footers and embedded
// objects are ignored.
func (d *docxParserService) ExtractText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %v", ErrCorruptDocument, err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if strings.EqualFold(f.Name, docxBodyPart) {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("%w: no %s found in DOCX", ErrCorruptDocument, docxBodyPart)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("%w: failed to open %s: %v", ErrCorruptDocument, docxBodyPart, err)
	}
	defer rc.Close()

	text, err := docxTextFromXML(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text content found in DOCX", ErrCorruptDocument)
	}

	return text, nil
}

func docxTextFromXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var buf strings.Builder
	// tab stop definitions live under <w:tabs> and are not content
	tabStops := 0

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed %s: %w", docxBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var text string
				if err := dec.DecodeElement(&text, &t); err != nil {
					return "", fmt.Errorf("malformed text run: %w", err)
				}
				buf.WriteString(text)
			case "tabs":
				tabStops++
			case "tab":
				if tabStops == 0 {
					buf.WriteByte('\t')
				}
			case "br", "cr":
				buf.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tabs":
				tabStops--
			case "p":
				buf.WriteString("\n\n")
			}
		}
	}

	return buf.String(), nil
}
