package models

type ScoreResponse struct {
	ATSScore float64         `json:"ats_score"`
	Criteria []CriterionData `json:"criteria,omitempty"`
}

type CriterionData struct {
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	Awarded float64 `json:"awarded"`
	Detail  string  `json:"detail,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
