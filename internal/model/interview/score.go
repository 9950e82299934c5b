package interview

// Band is the qualitative label derived from the overall numeric score.
type Band string

const (
	BandExcellent    Band = "Excellent"
	BandGood         Band = "Good"
	BandAverage      Band = "Average"
	BandBelowAverage Band = "Below Average"
	BandPoor         Band = "Poor"
)

// ComponentScore is one normalized scoring component with its effective
// (possibly renormalized) weight.
type ComponentScore struct {
	Name                 string  `json:"name"`
	Score                float64 `json:"score"`
	Weight               float64 `json:"weight"`
	WeightedContribution float64 `json:"weightedContribution"`
}

// ConfidenceScore is the weighted, explainable score for one answer.
// Partial marks that at least one component was excluded and the remaining
// weights were renormalized to sum to 1.
type ConfidenceScore struct {
	Overall    float64          `json:"overallScore"`
	Band       Band             `json:"band"`
	Components []ComponentScore `json:"componentScores"`
	Partial    bool             `json:"partial"`
}
