package services

import (
	"fmt"
	"os"
)

type ATSService interface {
	ScoreDocument(filename string, data []byte, jobDescription string) (*ScoreReport, error)
	Score(resumeText, jobDescription string) *ScoreReport
	ExtractFile(path string) (string, error)
	IsSupported(filename string) bool
}

type atsService struct {
	registry *ExtractorRegistry
	scorer   *Scorer
}

func NewATSService(registry *ExtractorRegistry, scorer *Scorer) ATSService {
	return &atsService{
		registry: registry,
		scorer:   scorer,
	}
}

// ScoreDocument extracts the resume text and scores it. Extraction errors
// abort scoring and are returned unchanged.
func (a *atsService) ScoreDocument(filename string, data []byte, jobDescription string) (*ScoreReport, error) {
	text, err := a.registry.Extract(filename, data)
	if err != nil {
		return nil, err
	}

	return a.scorer.Evaluate(text, jobDescription), nil
}

func (a *atsService) Score(resumeText, jobDescription string) *ScoreReport {
	return a.scorer.Evaluate(resumeText, jobDescription)
}

// ExtractFile reads a document from disk and extracts its text.
func (a *atsService) ExtractFile(path string) (string, error) {
	if !a.registry.IsSupported(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return a.registry.Extract(path, data)
}

func (a *atsService) IsSupported(filename string) bool {
	return a.registry.IsSupported(filename)
}
