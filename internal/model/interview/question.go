package interview

import "strings"

// Question is one interview prompt. Immutable once generated.
type Question struct {
	Prompt              string `json:"prompt"`
	Category            string `json:"category"`
	Difficulty          string `json:"difficulty"`
	ExpectedDurationSec int    `json:"expectedDurationSec"`
}

// Question categories.
const (
	CategoryBehavioral  = "behavioral"
	CategoryTechnical   = "technical"
	CategorySituational = "situational"
)

var (
	behavioralCues  = []string{"tell me about", "describe a time", "give me an example", "how did you handle"}
	technicalCues   = []string{"how do you", "what is", "explain", "implement", "design", "code", "algorithm"}
	situationalCues = []string{"what would you do", "how would you", "if you were", "imagine"}
)

// ClassifyCategory assigns a category from keyword cues in the prompt,
// defaulting to behavioral.
func ClassifyCategory(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, cue := range behavioralCues {
		if strings.Contains(lower, cue) {
			return CategoryBehavioral
		}
	}
	for _, cue := range technicalCues {
		if strings.Contains(lower, cue) {
			return CategoryTechnical
		}
	}
	for _, cue := range situationalCues {
		if strings.Contains(lower, cue) {
			return CategorySituational
		}
	}
	return CategoryBehavioral
}
