// internal/scoring/structural.go
package scoring

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var linkPattern = regexp.MustCompile(`https?://\S+`)

type structuralAnalysis struct {
	Score     int
	Issues    []string
	Strengths []string
}

// analyzeStructure starts at 100 and applies fixed penalties for shape
// problems. Each triggered condition records an issue; each passed condition
// records a strength.
func analyzeStructure(subject, body string) structuralAnalysis {
	a := structuralAnalysis{Score: 100}

	subjectLen := len([]rune(subject))
	switch {
	case subjectLen < 20:
		a.Score -= 10
		a.Issues = append(a.Issues, fmt.Sprintf("subject is only %d characters; short subjects look like notifications or spam", subjectLen))
	case subjectLen > 60:
		a.Score -= 15
		a.Issues = append(a.Issues, fmt.Sprintf("subject is %d characters; it will be truncated in most inboxes", subjectLen))
	default:
		a.Strengths = append(a.Strengths, "subject length sits in the readable 20-60 character range")
	}

	if upper, letters := uppercaseRatio(subject); letters > 0 && upper > 0.3 {
		a.Score -= 20
		a.Issues = append(a.Issues, "over 30% of the subject is uppercase, which reads as shouting")
	} else {
		a.Strengths = append(a.Strengths, "subject capitalization looks natural")
	}

	words := len(strings.Fields(body))
	switch {
	case words < 50:
		a.Score -= 10
		a.Issues = append(a.Issues, fmt.Sprintf("body has only %d words; very short bodies correlate with spam folder placement", words))
	case words > 500:
		a.Score -= 5
		a.Issues = append(a.Issues, fmt.Sprintf("body has %d words; long messages lose readers and engagement signals", words))
	default:
		a.Strengths = append(a.Strengths, "body length sits in the effective 50-500 word range")
	}

	links := len(linkPattern.FindAllString(body, -1))
	if links > 5 {
		a.Score -= 15
		a.Issues = append(a.Issues, fmt.Sprintf("%d raw links found; more than 5 is a classic bulk-mail signal", links))
	} else {
		a.Strengths = append(a.Strengths, "link count is within a safe range")
	}

	lower := strings.ToLower(subject + " " + body)
	if strings.Contains(lower, "click here") && links == 0 {
		a.Score -= 5
		a.Issues = append(a.Issues, `the text says "click here" but contains no link`)
	}

	exclamations := strings.Count(subject, "!") + strings.Count(body, "!")
	if exclamations > 3 {
		a.Score -= 10
		a.Issues = append(a.Issues, fmt.Sprintf("%d exclamation marks across subject and body; keep it to one or two", exclamations))
	} else {
		a.Strengths = append(a.Strengths, "punctuation is restrained")
	}

	return a
}

func uppercaseRatio(s string) (ratio float64, letters int) {
	upper := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0, 0
	}
	return float64(upper) / float64(letters), letters
}
