package textstats

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed behind ReadingTime.
const WordsPerMinute = 200

var (
	sentenceBoundary  = regexp.MustCompile(`[.!?](?:\s|$)`)
	paragraphBoundary = regexp.MustCompile(`\n\s*\n`)
)

var ErrUnknownAction = errors.New("unknown text action")

type Stats struct {
	Words       int `json:"words"`
	Characters  int `json:"characters"`
	Sentences   int `json:"sentences"`
	Paragraphs  int `json:"paragraphs"`
	ReadingTime int `json:"reading_time"`
}

// Analyze counts the trimmed text. Characters are runes, internal spaces
// included.
func Analyze(text string) Stats {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return Stats{}
	}

	words := len(strings.Fields(clean))
	return Stats{
		Words:       words,
		Characters:  utf8.RuneCountInString(clean),
		Sentences:   countSegments(sentenceBoundary, clean),
		Paragraphs:  countSegments(paragraphBoundary, clean),
		ReadingTime: int(math.Ceil(float64(words) / WordsPerMinute)),
	}
}

func countSegments(boundary *regexp.Regexp, s string) int {
	n := 0
	for _, seg := range boundary.Split(s, -1) {
		if seg != "" {
			n++
		}
	}
	return n
}

type Action string

const (
	ActionNone  Action = ""
	ActionUpper Action = "upper"
	ActionLower Action = "lower"
	ActionClear Action = "clear"
)

// Apply returns the buffer after action. ActionNone leaves it unchanged.
func Apply(text string, action Action) (string, error) {
	switch action {
	case ActionNone:
		return text, nil
	case ActionUpper:
		return strings.ToUpper(text), nil
	case ActionLower:
		return strings.ToLower(text), nil
	case ActionClear:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
