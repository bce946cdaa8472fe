package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ats-checker/internal/services"
)

func writeDOCX(t *testing.T, dir, name, text string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func newATSService() services.ATSService {
	return services.NewATSService(services.NewExtractorRegistry(), services.NewScorer(nil))
}

func TestScore(t *testing.T) {
	dir := t.TempDir()
	resume := writeDOCX(t, dir, "resume.docx", "Experience Education Skills")
	jobDesc := writeDOCX(t, dir, "job.docx", "pastry chef")

	tests := []struct {
		name string
		opts runOptions
		want string
	}{
		{
			name: "resume only",
			opts: runOptions{ResumePath: resume},
			want: "ATS Score: 81.25%\n",
		},
		{
			name: "with job description",
			opts: runOptions{ResumePath: resume, JobDescPath: jobDesc},
			want: "ATS Score: 68.75%\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, score(&out, newATSService(), tt.opts))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestScore_Breakdown(t *testing.T) {
	resume := writeDOCX(t, t.TempDir(), "resume.docx", "Experience Education Skills")

	var out bytes.Buffer
	require.NoError(t, score(&out, newATSService(), runOptions{ResumePath: resume, Breakdown: true}))

	assert.Contains(t, out.String(), "resume_length")
	assert.Contains(t, out.String(), "(3 words)")
	assert.Contains(t, out.String(), "ATS Score: 81.25%")
}

func TestScore_Errors(t *testing.T) {
	dir := t.TempDir()
	resume := writeDOCX(t, dir, "resume.docx", "Experience")
	corrupt := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a pdf"), 0644))

	tests := []struct {
		name    string
		opts    runOptions
		wantErr error
		wantOut string
	}{
		{
			name:    "unsupported resume",
			opts:    runOptions{ResumePath: filepath.Join(dir, "resume.txt")},
			wantErr: services.ErrUnsupportedFormat,
			wantOut: "Unsupported resume file format. Please provide a PDF or DOCX file.\n",
		},
		{
			name:    "unsupported job description",
			opts:    runOptions{ResumePath: resume, JobDescPath: filepath.Join(dir, "job.txt")},
			wantErr: services.ErrUnsupportedFormat,
			wantOut: "Unsupported job description file format. Please provide a PDF or DOCX file.\n",
		},
		{
			name:    "corrupt resume",
			opts:    runOptions{ResumePath: corrupt},
			wantErr: services.ErrCorruptDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := score(&out, newATSService(), tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotContains(t, out.String(), "ATS Score")
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, out.String())
			}
		})
	}
}

func TestFlagsAreBoundToViper(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "resume", value: "resume.pdf"},
		{name: "job-desc", value: "job.docx"},
		{name: "breakdown", value: "true"},
		{name: "debug", value: "true"},
		{name: "json", value: "true"},
	}

	require.Len(t, boundFlags, len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := lookupFlag(tt.name)
			require.NotNil(t, flag)
			t.Cleanup(func() {
				_ = flag.Value.Set(flag.DefValue)
				flag.Changed = false
			})

			require.NoError(t, flag.Value.Set(tt.value))
			flag.Changed = true

			assert.Equal(t, tt.value, viper.GetString(tt.name))
		})
	}
}
