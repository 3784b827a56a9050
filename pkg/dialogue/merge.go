// Package dialogue turns diarized utterances into readable, role-attributed
// conversation turns.
package dialogue

import (
	"strings"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/schema"
)

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultMinWords is the word count at or below which an utterance is
	// treated as a fragment
	DefaultMinWords = 3
)

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Merge folds consecutive utterances into turns. An utterance is appended
// to the previous turn when it has the same speaker, or when it has at most
// minWords words, regardless of speaker. The input is not modified.
func Merge(utterances []schema.Utterance, minWords int) []schema.Utterance {
	if minWords < 0 {
		minWords = 0
	}
	result := make([]schema.Utterance, 0, len(utterances))
	for _, utterance := range utterances {
		result = appendUtterance(result, utterance, minWords)
	}
	return result
}

//////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func appendUtterance(slice []schema.Utterance, utterance schema.Utterance, minWords int) []schema.Utterance {
	utterance.Text = strings.TrimSpace(utterance.Text)

	// Create a new turn if none exist
	if len(slice) == 0 {
		return append(slice, utterance)
	}

	// A fragment is absorbed even when the speaker changes
	last := &slice[len(slice)-1]
	if utterance.Speaker != last.Speaker && utterance.Words() > minWords {
		return append(slice, utterance)
	}

	last.Text = joinText(last.Text, utterance.Text)
	if utterance.End > last.End {
		last.End = utterance.End
	}
	return slice
}

func joinText(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
