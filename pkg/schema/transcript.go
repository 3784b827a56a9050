package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

//////////////////////////////////////////////////////////////////////////////
// TYPES

type Timestamp time.Duration

// Utterance is one speaker-attributed segment of transcribed speech, as
// returned by the transcription service. Speaker is an opaque id.
type Utterance struct {
	Speaker    string    `json:"speaker" writer:",width:10"`
	Text       string    `json:"text" writer:",wrap,width:70"`
	Start      Timestamp `json:"start,omitempty" writer:",right,width:8"`
	End        Timestamp `json:"end,omitempty" writer:",right,width:8"`
	Confidence float64   `json:"confidence,omitempty" writer:"-"`
}

// Turn is an utterance after role classification. Speaker keeps the raw
// id the role was derived from.
type Turn struct {
	Role    Role      `json:"role" writer:",width:10"`
	Speaker string    `json:"speaker,omitempty" writer:",width:8"`
	Text    string    `json:"text" writer:",wrap,width:70"`
	Start   Timestamp `json:"start,omitempty" writer:",right,width:8"`
	End     Timestamp `json:"end,omitempty" writer:",right,width:8"`
}

//////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (u Utterance) String() string {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (t Turn) String() string {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (t Timestamp) String() string {
	return time.Duration(t).Truncate(time.Millisecond).String()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	// We convert durations into float64 seconds
	return json.Marshal(time.Duration(t).Seconds())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return err
	}
	*t = SecToTimestamp(seconds)
	return nil
}

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func SecToTimestamp(sec float64) Timestamp {
	return Timestamp(time.Duration(sec * float64(time.Second)))
}

func MsToTimestamp(ms int64) Timestamp {
	return Timestamp(time.Duration(ms) * time.Millisecond)
}

// Validate returns ErrInvalidUtterance when the speaker or text is missing
func (u Utterance) Validate() error {
	if strings.TrimSpace(u.Speaker) == "" {
		return ErrInvalidUtterance.With("missing speaker")
	}
	if strings.TrimSpace(u.Text) == "" {
		return ErrInvalidUtterance.Withf("missing text for speaker %q", u.Speaker)
	}
	return nil
}

// Words returns the number of whitespace-separated words in the text
func (u Utterance) Words() int {
	return len(strings.Fields(u.Text))
}

// WriteText writes the turn as a "<Role>: <text>" line without a newline
func (t Turn) WriteText(w io.Writer) {
	fmt.Fprintf(w, "%s: %s", t.Role, strings.TrimSpace(t.Text))
}

// WriteSRT writes the turn as a numbered SubRip cue
func (t Turn) WriteSRT(w io.Writer, id int) {
	fmt.Fprintf(w, "%d\n%s --> %s\n", id, tsToSrt(time.Duration(t.Start)), tsToSrt(time.Duration(t.End)))
	fmt.Fprintf(w, "[%s] %s\n\n", t.Role, strings.TrimSpace(t.Text))
}

// WriteVTT writes the turn as a WebVTT cue with the role as the voice
func (t Turn) WriteVTT(w io.Writer) {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "%s --> %s\n", tsToVtt(time.Duration(t.Start)), tsToVtt(time.Duration(t.End)))
	fmt.Fprintf(w, "<v %s>%s</v>\n\n", t.Role, text)
}

//////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func tsToSrt(ts time.Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d", int(ts.Hours()), int(ts.Minutes())%60, int(ts.Seconds())%60, int(ts.Milliseconds())%1000)
}

func tsToVtt(ts time.Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", int(ts.Hours()), int(ts.Minutes())%60, int(ts.Seconds())%60, int(ts.Milliseconds())%1000)
}
