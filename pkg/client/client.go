package client

import (
	"context"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	// Packages
	errors "github.com/djthorpe/go-errors"
	"github.com/mutablelogic/go-callreview/pkg/client/assemblyai"
	"github.com/mutablelogic/go-callreview/pkg/client/elevenlabs"
	"github.com/mutablelogic/go-callreview/pkg/client/gowhisper"
	"github.com/mutablelogic/go-callreview/pkg/client/openai"
	"github.com/mutablelogic/go-callreview/pkg/config"
	"github.com/mutablelogic/go-callreview/pkg/retry"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-client"
	"github.com/mutablelogic/go-client/pkg/multipart"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
	"github.com/mutablelogic/go-server/pkg/types"
	"github.com/sirupsen/logrus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	transcription config.Transcription
	report        config.Report
	prompt        *template.Template

	assemblyai *assemblyai.Client
	elevenlabs *elevenlabs.Client
	gowhisper  *gowhisper.Client
	openai     *openai.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	reportBaseDelay = time.Second
	reportMaxDelay  = 30 * time.Second
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client, with a provider for each set of credentials
// found in the environment
func New(cfg config.Config, opts ...client.ClientOpt) (*Client, error) {
	self := new(Client)
	self.transcription = cfg.Transcription
	self.report = cfg.Report

	// report prompt
	if prompt, err := template.New("prompt").Option("missingkey=error").Parse(cfg.Report.Prompt); err != nil {
		return nil, errors.ErrBadParameter.Withf("report.prompt: %v", err)
	} else {
		self.prompt = prompt
	}

	// assemblyai client
	if key := assemblyai_key(); key != "" {
		if client, err := assemblyai.New(key, opts...); err != nil {
			return nil, err
		} else {
			self.assemblyai = client
		}
	}

	// elevenlabs client
	if key := elevenlabs_key(); key != "" {
		if client, err := elevenlabs.New(key, opts...); err != nil {
			return nil, err
		} else {
			self.elevenlabs = client
		}
	}

	// gowhisper client
	if endpoint := gowhisper_endpoint(); endpoint != "" {
		if client, err := gowhisper.New(endpoint, opts...); err != nil {
			return nil, err
		} else {
			self.gowhisper = client
		}
	}

	// openai client
	if key := openai_key(); key != "" {
		if endpoint := openai_endpoint(); endpoint != "" {
			opts = append(opts, client.OptEndpoint(endpoint))
		}
		if client, err := openai.New(key, opts...); err != nil {
			return nil, err
		} else {
			self.openai = client
		}
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func assemblyai_key() string {
	return os.Getenv("ASSEMBLYAI_API_KEY")
}

func elevenlabs_key() string {
	return os.Getenv("ELEVENLABS_API_KEY")
}

func gowhisper_endpoint() string {
	return os.Getenv("WHISPER_URL")
}

func openai_key() string {
	return os.Getenv("OPENAI_API_KEY")
}

func openai_endpoint() string {
	return os.Getenv("OPENAI_BASE_URL")
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Providers returns the transcription providers which have credentials
func (c *Client) Providers() []string {
	result := make([]string, 0, len(config.Providers))
	if c.assemblyai != nil {
		result = append(result, config.ProviderAssemblyAI)
	}
	if c.elevenlabs != nil {
		result = append(result, config.ProviderElevenLabs)
	}
	if c.gowhisper != nil {
		result = append(result, config.ProviderGoWhisper)
	}
	return result
}

// Transcribe performs a diarized transcription with the configured provider,
// or the provider set with OptProvider
func (c *Client) Transcribe(ctx context.Context, r io.Reader, opt ...Opt) ([]schema.Utterance, error) {
	o, err := applyOpts(c.transcription, opt...)
	if err != nil {
		return nil, err
	}
	code, code3 := LanguageCode(o.language)

	// Bound the whole transcription, including polling
	if c.transcription.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.transcription.Timeout)
		defer cancel()
	}

	var response []schema.Utterance
	switch {
	case o.provider == config.ProviderAssemblyAI && c.assemblyai != nil:
		req := assemblyai.TranscriptRequest{
			LanguageCode:     optString(code),
			SpeakersExpected: optUint(o.speakers),
		}
		if resp, err := c.assemblyai.Transcribe(ctx, r, req, c.transcription.PollInterval); err != nil {
			return nil, err
		} else {
			response = resp.Utterances()
		}
	case o.provider == config.ProviderElevenLabs && c.elevenlabs != nil:
		req := elevenlabs.TranscribeRequest{
			File:           newFile(o.path, r),
			Language:       optString(code3),
			NumSpeakers:    optUint(o.speakers),
			Diarize:        types.BoolPtr(true),
			TagAudioEvents: types.BoolPtr(false),
		}
		if resp, err := c.elevenlabs.Transcribe(ctx, req); err != nil {
			return nil, err
		} else {
			response = resp.Utterances()
		}
	case o.provider == config.ProviderGoWhisper && c.gowhisper != nil:
		req := gowhisper.TranscriptionRequest{
			File:     newFile(o.path, r),
			Language: optString(code),
			Diarize:  types.BoolPtr(true),
		}
		if resp, err := c.gowhisper.Transcribe(ctx, req); err != nil {
			return nil, err
		} else {
			response = resp.Utterances()
		}
	default:
		return nil, httpresponse.ErrNotImplemented.Withf("provider %q is not configured", o.provider)
	}

	// Return success
	return response, nil
}

// Report renders the prompt for the transcript and returns the model
// response, retrying transient failures
func (c *Client) Report(ctx context.Context, transcript string) (string, error) {
	if c.openai == nil {
		return "", httpresponse.ErrNotImplemented.With("report generation requires OPENAI_API_KEY")
	}

	// Render the prompt
	var prompt strings.Builder
	if err := c.prompt.Execute(&prompt, struct{ Transcript string }{transcript}); err != nil {
		return "", err
	}

	var result string
	cfg := retry.Config{
		MaxRetries:  c.report.Retries,
		BaseDelay:   reportBaseDelay,
		MaxDelay:    reportMaxDelay,
		IsRetryable: retry.IsTransient,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			logrus.WithFields(logrus.Fields{
				"model":   c.report.Model,
				"attempt": attempt,
				"delay":   delay,
			}).WithError(err).Warn("retrying report generation")
		},
	}
	if err := retry.Do(ctx, cfg, func() error {
		if report, err := c.openai.Complete(ctx, c.report.Model, c.report.Temperature, c.report.System, prompt.String()); err != nil {
			return err
		} else {
			result = report
		}
		return nil
	}); err != nil {
		return "", err
	}

	// Return success
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func newFile(path string, r io.Reader) multipart.File {
	return multipart.File{Path: path, Body: r}
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return types.StringPtr(v)
}

func optUint(v uint64) *uint64 {
	if v == 0 {
		return nil
	}
	return &v
}
