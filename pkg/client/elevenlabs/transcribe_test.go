package elevenlabs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/client/elevenlabs"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-client"
	"github.com/mutablelogic/go-client/pkg/multipart"
	"github.com/mutablelogic/go-server/pkg/types"
	"github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Utterances_001(t *testing.T) {
	assert := assert.New(t)
	resp := elevenlabs.TranscribeResponse{
		Words: []elevenlabs.TranscribeWord{
			word("word", "Lojas", "speaker_0", 0.0, 0.4),
			word("spacing", " ", "speaker_0", 0.4, 0.5),
			word("word", "Caedu", "speaker_0", 0.5, 1.0),
			word("audio_event", "(risos)", "", 1.0, 1.2),
			word("spacing", " ", "speaker_1", 1.2, 1.3),
			word("word", "alô", "speaker_1", 1.3, 1.6),
			word("spacing", " ", "speaker_0", 1.6, 1.7),
		},
	}
	utterances := resp.Utterances()
	if assert.Len(utterances, 2) {
		assert.Equal("speaker_0", utterances[0].Speaker)
		assert.Equal("Lojas Caedu", utterances[0].Text)
		assert.Equal(schema.SecToTimestamp(0), utterances[0].Start)
		assert.Equal(schema.SecToTimestamp(1.0), utterances[0].End)
		assert.Equal("speaker_1", utterances[1].Speaker)
		assert.Equal("alô", utterances[1].Text)
	}
}

func Test_Utterances_002(t *testing.T) {
	assert := assert.New(t)
	resp := elevenlabs.TranscribeResponse{
		Words: []elevenlabs.TranscribeWord{
			{Type: "word", Text: "bom"},
			{Type: "spacing", Text: " "},
			{Type: "word", Text: "dia"},
		},
	}
	utterances := resp.Utterances()
	if assert.Len(utterances, 1) {
		assert.Equal(elevenlabs.DefaultSpeaker, utterances[0].Speaker)
		assert.Equal("bom dia", utterances[0].Text)
	}
	assert.Empty((&elevenlabs.TranscribeResponse{}).Utterances())
}

func Test_Transcribe_001(t *testing.T) {
	assert := assert.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("/speech-to-text", r.URL.Path)
		assert.Equal("secret", r.Header.Get("xi-api-key"))
		if assert.NoError(r.ParseMultipartForm(1 << 20)) {
			assert.Equal("scribe_v1", r.FormValue("model_id"))
			_, header, err := r.FormFile("file")
			if assert.NoError(err) {
				assert.Equal("call.wav", header.Filename)
			}
		}
		w.Header().Set(types.ContentTypeHeader, types.ContentTypeJSON)
		json.NewEncoder(w).Encode(elevenlabs.TranscribeResponse{
			Language: "por",
			Text:     "alô",
			Words: []elevenlabs.TranscribeWord{
				word("word", "alô", "speaker_1", 0, 0.5),
			},
		})
	}))
	defer server.Close()

	c, err := elevenlabs.New("secret", client.OptEndpoint(server.URL))
	if !assert.NoError(err) {
		t.FailNow()
	}
	resp, err := c.Transcribe(context.Background(), elevenlabs.TranscribeRequest{
		File:     multipart.File{Path: "call.wav", Body: strings.NewReader("RIFF")},
		Language: types.StringPtr("por"),
		Diarize:  types.BoolPtr(true),
	})
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("por", resp.Language)
	assert.Equal([]schema.Utterance{{
		Speaker: "speaker_1",
		Text:    "alô",
		End:     schema.SecToTimestamp(0.5),
	}}, resp.Utterances())
}

func Test_Transcribe_002(t *testing.T) {
	assert := assert.New(t)
	c, err := elevenlabs.New("secret")
	if !assert.NoError(err) {
		t.FailNow()
	}
	_, err = c.Transcribe(context.Background(), elevenlabs.TranscribeRequest{Model: "scribe_v9"})
	assert.Error(err)
	_, err = c.Transcribe(context.Background(), elevenlabs.TranscribeRequest{})
	assert.Error(err)
}

///////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func word(kind, text, speaker string, start, end float64) elevenlabs.TranscribeWord {
	w := elevenlabs.TranscribeWord{Type: kind, Text: text, Start: start, End: end}
	if speaker != "" {
		w.Speaker = types.StringPtr(speaker)
	}
	return w
}
