package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`

func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func docxBody(t *testing.T, body string) []byte {
	t.Helper()
	return buildDOCX(t, map[string]string{
		"word/document.xml": `<w:document ` + wordNamespaces + `><w:body>` + body + `</w:body></w:document>`,
	})
}

func TestDOCXParser_ExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single paragraph",
			body: `<w:p><w:r><w:t>Hello</w:t></w:r></w:p>`,
			want: "Hello",
		},
		{
			name: "paragraphs separated by blank line",
			body: `<w:p><w:r><w:t>Experience</w:t></w:r></w:p><w:p><w:r><w:t>Education</w:t></w:r></w:p>`,
			want: "Experience\n\nEducation",
		},
		{
			name: "tabs and breaks inside a run",
			body: `<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>Python</w:t><w:br/><w:t>SQL</w:t></w:r></w:p>`,
			want: "Go\tPython\nSQL",
		},
		{
			name: "tab stop definitions are not content",
			body: `<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Skills</w:t></w:r></w:p>`,
			want: "Skills",
		},
		{
			name: "preserved spaces and split runs",
			body: `<w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>`,
			want: "Senior Engineer",
		},
		{
			name: "drawings are ignored",
			body: `<w:p><w:r><w:t>Projects</w:t></w:r></w:p><w:p><w:r><w:drawing><wp:inline><wp:docPr id="1" name="Logo"/></wp:inline></w:drawing></w:r></w:p>`,
			want: "Projects",
		},
	}

	parser := NewDOCXParserService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.ExtractText(docxBody(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDOCXParser_IgnoresHeaders(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"word/document.xml": `<w:document ` + wordNamespaces + `><w:body><w:p><w:r><w:t>Body</w:t></w:r></w:p></w:body></w:document>`,
		"word/header1.xml":  `<w:hdr ` + wordNamespaces + `><w:p><w:r><w:t>Header</w:t></w:r></w:p></w:hdr>`,
	})

	got, err := NewDOCXParserService().ExtractText(data)
	require.NoError(t, err)
	assert.Equal(t, "Body", got)
}

func TestDOCXParser_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{
			name: "not a zip archive",
			data: func(*testing.T) []byte { return []byte("plain text pretending to be a docx") },
		},
		{
			name: "empty input",
			data: func(*testing.T) []byte { return nil },
		},
		{
			name: "missing document part",
			data: func(t *testing.T) []byte {
				return buildDOCX(t, map[string]string{"word/styles.xml": "<w:styles/>"})
			},
		},
		{
			name: "no text",
			data: func(t *testing.T) []byte { return docxBody(t, `<w:p></w:p>`) },
		},
		{
			name: "malformed xml",
			data: func(t *testing.T) []byte {
				return buildDOCX(t, map[string]string{"word/document.xml": `<w:document><w:body><w:p>`})
			},
		},
	}

	parser := NewDOCXParserService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ExtractText(tt.data(t))
			assert.ErrorIs(t, err, ErrCorruptDocument)
		})
	}
}

// Word registers every part in [Content_Types].xml. Only the main document
// part is read, and tabs stay tabs so the tables criterion can see them.
func TestDOCXParser_BodyOnlyKeepsTabs(t *testing.T) {
	contentTypes := `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>
<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>
</Types>`

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "tab between columns",
			body: `<w:p><w:r><w:t>Skills</w:t><w:tab/><w:t>Go</w:t></w:r></w:p>`,
			want: "Skills\tGo",
		},
		{
			name: "tab and paragraph",
			body: `<w:p><w:r><w:t>Experience</w:t></w:r></w:p><w:p><w:r><w:tab/><w:t>Engineer</w:t></w:r></w:p>`,
			want: "Experience\n\n\tEngineer",
		},
	}

	parser := NewDOCXParserService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildDOCX(t, map[string]string{
				"[Content_Types].xml": contentTypes,
				"word/document.xml":   `<w:document ` + wordNamespaces + `><w:body>` + tt.body + `</w:body></w:document>`,
				"word/header1.xml":    `<w:hdr ` + wordNamespaces + `><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p></w:hdr>`,
				"word/footer1.xml":    `<w:ftr ` + wordNamespaces + `><w:p><w:r><w:t>Page 1</w:t></w:r></w:p></w:ftr>`,
			})

			got, err := parser.ExtractText(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "Jane Doe")
			assert.NotContains(t, got, "Page 1")
		})
	}
}
