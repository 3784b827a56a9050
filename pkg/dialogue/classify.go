package dialogue

import (
	"strings"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/schema"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

// Classifier assigns the Operator role to any speaker who says one of the
// trigger phrases, and the Customer role to everyone else
type Classifier struct {
	phrases []string
}

//////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewClassifier(phrases ...string) *Classifier {
	self := new(Classifier)
	for _, phrase := range phrases {
		if phrase = strings.ToLower(strings.TrimSpace(phrase)); phrase != "" {
			self.phrases = append(self.phrases, phrase)
		}
	}
	return self
}

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Phrases returns the normalized trigger phrases
func (c *Classifier) Phrases() []string {
	return append([]string(nil), c.phrases...)
}

// Roles returns the role for each raw speaker id. A trigger phrase makes
// the speaker an Operator for the whole call; otherwise the first role
// assigned to a speaker is kept.
func (c *Classifier) Roles(utterances []schema.Utterance) map[string]schema.Role {
	roles := make(map[string]schema.Role)
	for _, utterance := range utterances {
		if c.triggered(utterance.Text) {
			roles[utterance.Speaker] = schema.RoleOperator
		} else if _, exists := roles[utterance.Speaker]; !exists {
			roles[utterance.Speaker] = schema.RoleCustomer
		}
	}
	return roles
}

// Classify returns one turn per utterance, with the role decided over the
// whole transcript before any turn is written
func (c *Classifier) Classify(utterances []schema.Utterance) []schema.Turn {
	roles := c.Roles(utterances)
	result := make([]schema.Turn, 0, len(utterances))
	for _, utterance := range utterances {
		result = append(result, schema.Turn{
			Role:    roles[utterance.Speaker],
			Speaker: utterance.Speaker,
			Text:    utterance.Text,
			Start:   utterance.Start,
			End:     utterance.End,
		})
	}
	return result
}

//////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Classifier) triggered(text string) bool {
	text = strings.ToLower(text)
	for _, phrase := range c.phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
