package services

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBulletMarker is "•" (U+2022) as it reads after its UTF-8 bytes were
// decoded as Windows-1252. Resume text carrying a correctly decoded bullet
// does not match it.
const DefaultBulletMarker = "â€¢"

// MaxPoints is the divisor of the percentage. It counts every criterion as
// one point, so it is larger than AchievablePoints and a perfect resume
// scores 87.5.
const MaxPoints = 8.0

// AchievablePoints is the sum of all criterion weights.
const AchievablePoints = 7.0

const (
	CriterionKeywords    = "keyword_optimization"
	CriterionFormatting  = "formatting"
	CriterionHeadings    = "section_headings"
	CriterionFileType    = "file_type"
	CriterionTables      = "tables_and_columns"
	CriterionSpelling    = "spelling"
	CriterionLength      = "resume_length"
	CriterionBulletPoint = "bullet_points"
)

const (
	similarityThreshold = 0.5
	minResumeWords      = 500
	maxResumeWords      = 1000
	minBulletWords      = 10
	maxBulletWords      = 20
)

var (
	commonKeywords  = []string{"experience", "education", "skills", "professional", "development"}
	sectionHeadings = []string{"experience", "education", "skills", "projects", "certifications"}
	markupChars     = regexp.MustCompile(`[{}\[\]<>]`)
)

type CriterionResult struct {
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	Awarded float64 `json:"awarded"`
	Detail  string  `json:"detail,omitempty"`
}

type ScoreReport struct {
	Points           float64           `json:"points"`
	AchievablePoints float64           `json:"achievable_points"`
	MaxPoints        float64           `json:"max_points"`
	Score            float64           `json:"ats_score"`
	Criteria         []CriterionResult `json:"criteria"`
}

// Criterion returns the result for name, or false if it was not evaluated.
func (r *ScoreReport) Criterion(name string) (CriterionResult, bool) {
	for _, c := range r.Criteria {
		if c.Name == name {
			return c, true
		}
	}
	return CriterionResult{}, false
}

type ScorerOption func(*Scorer)

// WithBulletMarker replaces the glyph that starts a bullet line. An empty
// marker keeps the default.
func WithBulletMarker(marker string) ScorerOption {
	return func(s *Scorer) {
		if marker != "" {
			s.bulletMarker = marker
		}
	}
}

// Scorer computes ATS compatibility reports. It holds no per-call state and
// may be shared between goroutines.
type Scorer struct {
	dictionary    *Dictionary
	bulletMarker  string
	bulletPattern *regexp.Regexp
}

func NewScorer(dictionary *Dictionary, opts ...ScorerOption) *Scorer {
	if dictionary == nil {
		dictionary = DefaultDictionary()
	}

	s := &Scorer{
		dictionary:   dictionary,
		bulletMarker: DefaultBulletMarker,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.bulletPattern = regexp.MustCompile(regexp.QuoteMeta(s.bulletMarker) + `\s.*`)

	return s
}

// Evaluate runs the eight criteria over resumeText. An empty jobDescription
// means none was supplied.
func (s *Scorer) Evaluate(resumeText, jobDescription string) *ScoreReport {
	criteria := []CriterionResult{
		s.keywordOptimization(resumeText, jobDescription),
		s.formatting(resumeText),
		s.sectionHeadings(resumeText),
		s.fileType(),
		s.tablesAndColumns(resumeText),
		s.spelling(resumeText),
		s.resumeLength(resumeText),
		s.bulletPoints(resumeText),
	}

	var points float64
	for _, c := range criteria {
		points += c.Awarded
	}

	return &ScoreReport{
		Points:           points,
		AchievablePoints: AchievablePoints,
		MaxPoints:        MaxPoints,
		Score:            points / MaxPoints * 100,
		Criteria:         criteria,
	}
}

func award(name string, weight float64, passed bool, detail string) CriterionResult {
	result := CriterionResult{Name: name, Weight: weight, Detail: detail}
	if passed {
		result.Awarded = weight
	}
	return result
}

func (s *Scorer) keywordOptimization(resumeText, jobDescription string) CriterionResult {
	if jobDescription != "" {
		similarity := CosineSimilarity(CleanText(resumeText), CleanText(jobDescription))
		return award(CriterionKeywords, 1, similarity > similarityThreshold,
			fmt.Sprintf("job description similarity %.4f", similarity))
	}

	count := 0
	for _, word := range strings.Fields(strings.ToLower(resumeText)) {
		for _, keyword := range commonKeywords {
			if word == keyword {
				count++
				break
			}
		}
	}

	return award(CriterionKeywords, 1, count >= len(commonKeywords)/2,
		fmt.Sprintf("%d common keyword occurrences", count))
}

func (s *Scorer) formatting(resumeText string) CriterionResult {
	return award(CriterionFormatting, 1, !markupChars.MatchString(resumeText), "")
}

func (s *Scorer) sectionHeadings(resumeText string) CriterionResult {
	lower := strings.ToLower(resumeText)
	for _, heading := range sectionHeadings {
		if strings.Contains(lower, heading) {
			return award(CriterionHeadings, 1, true, "found "+heading)
		}
	}
	return award(CriterionHeadings, 1, false, "no section headings found")
}

// fileType always passes: reaching the scorer means extraction succeeded.
func (s *Scorer) fileType() CriterionResult {
	return award(CriterionFileType, 1, true, "")
}

func (s *Scorer) tablesAndColumns(resumeText string) CriterionResult {
	return award(CriterionTables, 1, !strings.Contains(resumeText, "\t"), "")
}

func (s *Scorer) spelling(resumeText string) CriterionResult {
	unknown := s.dictionary.UnknownWords(resumeText)
	detail := ""
	if len(unknown) > 0 {
		detail = "unknown words: " + strings.Join(unknown, ", ")
	}
	return award(CriterionSpelling, 1, len(unknown) == 0, detail)
}

func (s *Scorer) resumeLength(resumeText string) CriterionResult {
	words := len(strings.Fields(resumeText))
	return award(CriterionLength, 0.5, words >= minResumeWords && words <= maxResumeWords,
		fmt.Sprintf("%d words", words))
}

// bulletPoints passes when every detected bullet has 10 to 20 words, the
// marker included. No detected bullets also passes.
func (s *Scorer) bulletPoints(resumeText string) CriterionResult {
	bullets := s.bulletPattern.FindAllString(resumeText, -1)
	passed := true
	for _, bullet := range bullets {
		words := len(strings.Fields(bullet))
		if words < minBulletWords || words > maxBulletWords {
			passed = false
			break
		}
	}
	return award(CriterionBulletPoint, 0.5, passed, fmt.Sprintf("%d bullet lines", len(bullets)))
}
