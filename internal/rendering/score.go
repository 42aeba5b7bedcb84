package rendering

import (
	"net/url"
	"regexp"
	"strings"
)

// ScoreClass is the three-way classification of a 0-100 score.
type ScoreClass string

// Score classes.
const (
	ScoreGood    ScoreClass = "good"
	ScoreWarning ScoreClass = "warning"
	ScorePoor    ScoreClass = "poor"
)

// Classification thresholds shared by every score display.
const (
	GoodThreshold    = 70
	WarningThreshold = 50
)

// Classify maps a score to its class: >=70 good, >=50 warning, else poor.
func Classify(score float64) ScoreClass {
	switch {
	case score >= GoodThreshold:
		return ScoreGood
	case score >= WarningThreshold:
		return ScoreWarning
	default:
		return ScorePoor
	}
}

// Color returns the display color of the class.
func (c ScoreClass) Color() string {
	switch c {
	case ScoreGood:
		return "#34d399"
	case ScoreWarning:
		return "#fbbf24"
	default:
		return "#f87171"
	}
}

// Message returns the match summary shown next to a skills-analysis score.
func (c ScoreClass) Message() string {
	switch c {
	case ScoreGood:
		return "✅ Strong alignment with target role"
	case ScoreWarning:
		return "⚠️ Good match — address gaps"
	default:
		return "🔴 Skill development needed"
	}
}

var (
	httpScheme  = regexp.MustCompile(`(?i)^https?://`)
	otherScheme = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*:([^0-9]|$)`)
)

// NormalizeURL trims the value and adds https:// when no scheme is present. Empty
// values and any scheme other than http(s) yield "". A host:port value is not a scheme.
func NormalizeURL(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if httpScheme.MatchString(v) {
		return v
	}
	if otherScheme.MatchString(v) {
		return ""
	}
	v = "https://" + v
	if _, err := url.Parse(v); err != nil {
		return ""
	}
	return v
}
