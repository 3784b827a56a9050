package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/client"
	"github.com/mutablelogic/go-callreview/pkg/client/gowhisper"
	"github.com/mutablelogic/go-callreview/pkg/client/openai"
	"github.com/mutablelogic/go-callreview/pkg/config"
	"github.com/mutablelogic/go-callreview/pkg/retry"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-server/pkg/types"
	"github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Client_001(t *testing.T) {
	assert := assert.New(t)
	ClearEnv(t)

	c, err := client.New(config.Default())
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Empty(c.Providers())

	_, err = c.Transcribe(context.Background(), strings.NewReader("RIFF"))
	assert.Error(err)
	_, err = c.Report(context.Background(), "Operator: alô")
	assert.Error(err)
}

func Test_Client_002(t *testing.T) {
	assert := assert.New(t)
	ClearEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if assert.NoError(r.ParseMultipartForm(1 << 20)) {
			_, header, err := r.FormFile("file")
			if assert.NoError(err) {
				assert.Equal("call.wav", header.Filename)
			}
		}
		w.Header().Set(types.ContentTypeHeader, types.ContentTypeJSON)
		json.NewEncoder(w).Encode(gowhisper.TranscriptionResponse{
			Segments: []gowhisper.Segment{
				{Text: "Lojas Caedu, bom dia", SpeakerTurn: true},
				{Text: "bom dia"},
			},
		})
	}))
	defer server.Close()
	t.Setenv("WHISPER_URL", server.URL)

	c, err := client.New(config.Default())
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]string{config.ProviderGoWhisper}, c.Providers())

	// The default provider is not configured
	_, err = c.Transcribe(context.Background(), strings.NewReader("RIFF"))
	assert.Error(err)

	utterances, err := c.Transcribe(context.Background(), strings.NewReader("RIFF"),
		client.OptProvider(config.ProviderGoWhisper),
		client.OptLanguage("portuguese"),
		client.OptPath("call.wav"),
	)
	if assert.NoError(err) {
		assert.Equal([]schema.Utterance{
			{Speaker: "A", Text: "Lojas Caedu, bom dia"},
			{Speaker: "B", Text: "bom dia"},
		}, utterances)
	}
}

func Test_Client_003(t *testing.T) {
	assert := assert.New(t)
	ClearEnv(t)

	c, err := client.New(config.Default())
	if !assert.NoError(err) {
		t.FailNow()
	}
	_, err = c.Transcribe(context.Background(), strings.NewReader("RIFF"), client.OptProvider("deepgram"))
	assert.Error(err)
	_, err = c.Transcribe(context.Background(), strings.NewReader("RIFF"), client.OptLanguage("klingon"))
	assert.Error(err)
}

func Test_Client_004(t *testing.T) {
	assert := assert.New(t)
	ClearEnv(t)

	cfg := config.Default()
	cfg.Report.System = "analista"
	cfg.Report.Prompt = "Analise:\n{{ .Transcript }}"

	server := NewChatServer(t, 0, func(req openai.ChatRequest) {
		assert.Equal(cfg.Report.Model, req.Model)
		if assert.Len(req.Messages, 2) {
			assert.Equal("analista", req.Messages[0].Content)
			assert.Equal("Analise:\nOperator: alô\nCustomer: oi", req.Messages[1].Content)
		}
	})
	defer server.Close()
	t.Setenv("OPENAI_API_KEY", "secret")
	t.Setenv("OPENAI_BASE_URL", server.URL+"/")

	c, err := client.New(cfg)
	if !assert.NoError(err) {
		t.FailNow()
	}
	report, err := c.Report(context.Background(), "Operator: alô\nCustomer: oi")
	if assert.NoError(err) {
		assert.Equal("Nota final: 9", report)
	}
}

func Test_Client_005(t *testing.T) {
	assert := assert.New(t)
	ClearEnv(t)

	cfg := config.Default()
	cfg.Report.Retries = 1

	server := NewChatServer(t, 1, nil)
	defer server.Close()
	t.Setenv("OPENAI_API_KEY", "secret")
	t.Setenv("OPENAI_BASE_URL", server.URL+"/")

	c, err := client.New(cfg)
	if !assert.NoError(err) {
		t.FailNow()
	}
	report, err := c.Report(context.Background(), "Operator: alô")
	if assert.NoError(err) {
		assert.Equal("Nota final: 9", report)
	}
}

func Test_Client_006(t *testing.T) {
	assert := assert.New(t)
	ClearEnv(t)

	cfg := config.Default()
	cfg.Report.Prompt = "{{ .Transcript "
	_, err := client.New(cfg)
	assert.Error(err)
}

func Test_Client_007(t *testing.T) {
	// A rejected request is not sent again
	assert := assert.New(t)
	ClearEnv(t)

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set(types.ContentTypeHeader, types.ContentTypeJSON)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()
	t.Setenv("OPENAI_API_KEY", "secret")
	t.Setenv("OPENAI_BASE_URL", server.URL+"/")

	c, err := client.New(config.Default())
	if !assert.NoError(err) {
		t.FailNow()
	}
	_, err = c.Report(context.Background(), "Operator: alô")
	if assert.Error(err) {
		assert.Equal(http.StatusUnauthorized, retry.StatusCode(err))
	}
	assert.Equal(int32(1), hits.Load())
}

///////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func ClearEnv(t *testing.T) {
	for _, key := range []string{"ASSEMBLYAI_API_KEY", "ELEVENLABS_API_KEY", "WHISPER_URL", "OPENAI_API_KEY", "OPENAI_BASE_URL"} {
		t.Setenv(key, "")
	}
}

// NewChatServer returns a chat completions server which fails the first
// requests with a server error
func NewChatServer(t *testing.T, failures int32, fn func(openai.ChatRequest)) *httptest.Server {
	var count atomic.Int32
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if count.Add(1) <= failures {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var req openai.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
		} else if fn != nil {
			fn(req)
		}
		w.Header().Set(types.ContentTypeHeader, types.ContentTypeJSON)
		json.NewEncoder(w).Encode(openai.ChatResponse{
			Choices: []openai.Choice{
				{Message: openai.Message{Role: openai.RoleAssistant, Content: "Nota final: 9"}},
			},
		})
	}))
}
