package assemblyai

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-server/pkg/types"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type TranscriptRequest struct {
	AudioUrl         string  `json:"audio_url"`
	LanguageCode     *string `json:"language_code,omitempty"`
	SpeakerLabels    bool    `json:"speaker_labels"`
	SpeakersExpected *uint64 `json:"speakers_expected,omitempty"`
}

type Transcript struct {
	Id            string      `json:"id"`
	Status        string      `json:"status"` // queued, processing, completed, error
	Error         string      `json:"error,omitempty"`
	LanguageCode  string      `json:"language_code,omitempty"`
	AudioDuration float64     `json:"audio_duration,omitempty"` // seconds
	Text          string      `json:"text,omitempty"`
	Segments      []Utterance `json:"utterances,omitempty"`
}

type Utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      int64   `json:"start"` // milliseconds
	End        int64   `json:"end"`   // milliseconds
	Confidence float64 `json:"confidence"`
}

type uploadResponse struct {
	UploadUrl string `json:"upload_url"`
}

// upload is a request payload which streams the audio as the raw body
type upload struct {
	io.Reader
}

/////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Endpoint       = "https://api.assemblyai.com/v2"
	UploadPath     = "upload"
	TranscriptPath = "transcript"
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

const (
	contentTypeBinary = "application/octet-stream"
)

/////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Transcript) String() string {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

/////////////////////////////////////////////////////////////////////////////////
// PAYLOAD

func (upload) Method() string {
	return http.MethodPost
}

func (upload) Accept() string {
	return types.ContentTypeJSON
}

func (upload) Type() string {
	return contentTypeBinary
}

/////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Done returns true when the transcript has reached a terminal status
func (t *Transcript) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusError
}

// Utterances returns the diarized utterances with non-empty text
func (t *Transcript) Utterances() []schema.Utterance {
	result := make([]schema.Utterance, 0, len(t.Segments))
	for _, u := range t.Segments {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		result = append(result, schema.Utterance{
			Speaker:    u.Speaker,
			Text:       text,
			Start:      schema.MsToTimestamp(u.Start),
			End:        schema.MsToTimestamp(u.End),
			Confidence: u.Confidence,
		})
	}
	return result
}
