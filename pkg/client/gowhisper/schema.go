package gowhisper

import (
	"encoding/json"
	"strings"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-client/pkg/multipart"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type TranscriptionRequest struct {
	Model    string         `json:"model"`
	File     multipart.File `json:"file"`
	Language *string        `json:"language,omitempty"`
	Format   *string        `json:"response_format,omitempty"`
	Diarize  *bool          `json:"diarize,omitempty"`
}

type TranscriptionResponse struct {
	Task     string           `json:"task,omitempty"`
	Language string           `json:"language,omitempty"`
	Duration schema.Timestamp `json:"duration,omitempty"`
	Text     string           `json:"text,omitempty"`
	Segments []Segment        `json:"segments,omitempty"`
}

type Segment struct {
	Id          int32            `json:"id"`
	Start       schema.Timestamp `json:"start"`
	End         schema.Timestamp `json:"end"`
	Text        string           `json:"text"`
	SpeakerTurn bool             `json:"speaker_turn,omitempty"` // Next segment is a new speaker
}

/////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	TranscribePath = "audio/transcriptions"
	FormatJson     = "verbose_json"
	DefaultModel   = "ggml-medium-q5_0"
)

var (
	// The server only marks turns, so speakers alternate between two ids
	Speakers = [2]string{"A", "B"}
)

/////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r TranscriptionResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

/////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Utterances returns one utterance per non-empty segment. A segment flagged
// with a speaker turn hands the following segment to the other speaker.
func (r *TranscriptionResponse) Utterances() []schema.Utterance {
	result := make([]schema.Utterance, 0, len(r.Segments))
	speaker := 0
	for _, seg := range r.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			result = append(result, schema.Utterance{
				Speaker: Speakers[speaker],
				Text:    text,
				Start:   seg.Start,
				End:     seg.End,
			})
		}
		if seg.SpeakerTurn {
			speaker = 1 - speaker
		}
	}
	return result
}
