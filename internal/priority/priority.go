// Package priority maps a stakeholder's qualitative influence and interest
// levels onto a comparable integer score.
package priority

// Level is an ordinal influence or interest rating.
type Level string

const (
	Low      Level = "low"
	Medium   Level = "medium"
	High     Level = "high"
	VeryHigh Level = "very_high"
)

// HighThreshold is the minimum score counted as high priority. Dashboard
// counts and list filtering must both go through IsHighPriority.
const HighThreshold = 12

// Levels lists every level in ascending order.
var Levels = []Level{Low, Medium, High, VeryHigh}

var levelScores = map[Level]int{
	Low:      1,
	Medium:   2,
	High:     3,
	VeryHigh: 4,
}

// ParseLevel reports whether s is a known level.
func ParseLevel(s string) (Level, bool) {
	l := Level(s)
	_, ok := levelScores[l]
	return l, ok
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	_, ok := levelScores[l]
	return ok
}

// Score returns 1..4. Unknown or empty levels count as medium.
func (l Level) Score() int {
	if s, ok := levelScores[l]; ok {
		return s
	}
	return levelScores[Medium]
}

// Score returns influence × interest, always in [1, 16].
func Score(influence, interest Level) int {
	return influence.Score() * interest.Score()
}

// IsHighPriority reports whether the pair reaches HighThreshold.
func IsHighPriority(influence, interest Level) bool {
	return Score(influence, interest) >= HighThreshold
}
