package elevenlabs

import (
	"encoding/json"
	"strings"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-client/pkg/multipart"
	"github.com/mutablelogic/go-server/pkg/types"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type TranscribeRequest struct {
	Model          string         `json:"model_id"` // scribe_v1, scribe_v1_experimental
	File           multipart.File `json:"file"`
	Language       *string        `json:"language_code,omitempty"`
	TagAudioEvents *bool          `json:"tag_audio_events,omitempty"`
	NumSpeakers    *uint64        `json:"num_speakers,omitempty"`
	Timestamps     *string        `json:"timestamps_granularity,omitempty"` // none, word, character
	Diarize        *bool          `json:"diarize,omitempty"`
}

type TranscribeWord struct {
	Text    string  `json:"text"`
	Type    string  `json:"type"` // word, spacing, audio_event
	Logprob float64 `json:"logprob,omitempty"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker *string `json:"speaker_id,omitempty"`
}

type TranscribeResponse struct {
	Language    string           `json:"language_code"`
	Probability float64          `json:"language_probability"`
	Text        string           `json:"text"`
	Words       []TranscribeWord `json:"words,omitempty"`
}

/////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Endpoint       = "https://api.elevenlabs.io/v1"
	TranscribePath = "speech-to-text"
)

const (
	WordTypeWord       = "word"
	WordTypeSpacing    = "spacing"
	WordTypeAudioEvent = "audio_event"
)

const (
	// Speaker id used when the response is not diarized
	DefaultSpeaker = "speaker_0"
)

var (
	Models = []string{"scribe_v1", "scribe_v1_experimental"}
)

/////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s TranscribeResponse) String() string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

/////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Utterances folds the words of the response into one utterance per change
// of speaker. Audio events and whitespace-only utterances are dropped.
func (r *TranscribeResponse) Utterances() []schema.Utterance {
	result := make([]schema.Utterance, 0, 10)
	for _, word := range r.Words {
		result = appendWord(result, word)
	}

	// Trim text and drop empty utterances
	utterances := make([]schema.Utterance, 0, len(result))
	for _, u := range result {
		u.Text = strings.TrimSpace(u.Text)
		if u.Text != "" {
			utterances = append(utterances, u)
		}
	}
	return utterances
}

/////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func appendWord(slice []schema.Utterance, word TranscribeWord) []schema.Utterance {
	if word.Type == WordTypeAudioEvent {
		return slice
	}

	speaker := DefaultSpeaker
	if word.Speaker != nil {
		speaker = types.PtrString(word.Speaker)
	}

	// Same speaker continues the current utterance
	if n := len(slice); n > 0 && slice[n-1].Speaker == speaker {
		slice[n-1].Text += word.Text
		slice[n-1].End = schema.SecToTimestamp(word.End)
		return slice
	}

	// Spacing never starts an utterance
	if word.Type == WordTypeSpacing {
		return slice
	}

	return append(slice, schema.Utterance{
		Speaker: speaker,
		Text:    word.Text,
		Start:   schema.SecToTimestamp(word.Start),
		End:     schema.SecToTimestamp(word.End),
	})
}
