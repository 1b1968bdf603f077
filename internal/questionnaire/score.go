package questionnaire

// Satisfaction scoring for the dashboard gauge. Earlier checklist revisions
// stored rating answers under the legacy ids below; current responses mostly
// answer none of them, in which case the score stays at zero.

var satisfactionScore = map[string]int{
	"Eccellente":        100,
	"Ottimo":            90,
	"Buono":             75,
	"Sufficiente":       60,
	"Insufficiente":     40,
	"Scarso":            25,
	"Molto soddisfatto": 100,
	"Soddisfatto":       75,
	"Neutrale":          50,
	"Insoddisfatto":     25,
}

// SatisfactionQuestionIDs are the legacy rating questions averaged into the
// overall satisfaction score.
var SatisfactionQuestionIDs = []string{"q2", "q3", "q4", "q7"}

// SatisfactionDistributionID is the question whose answers feed the
// dashboard's satisfaction breakdown, falling back to the software question
// when absent.
const (
	SatisfactionDistributionID       = "q7"
	SatisfactionDistributionFallback = "10.1"
)

// Score maps a rating answer to its numeric value; unknown answers score 0
// and do not count toward the average.
func Score(answer string) (int, bool) {
	s, ok := satisfactionScore[answer]
	return s, ok
}
