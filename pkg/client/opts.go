package client

import (
	"slices"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/config"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Request options
type opts struct {
	provider string
	language string
	speakers uint64
	path     string
}

type Opt func(*opts) error

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(defaults config.Transcription, opt ...Opt) (*opts, error) {
	o := opts{
		provider: defaults.Provider,
		language: defaults.Language,
		speakers: defaults.Speakers,
	}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}
	if o.path == "" {
		o.path = "audio.wav"
	}
	return &o, nil
}

// Resolve returns the provider and language code a transcription with these
// options would use
func Resolve(defaults config.Transcription, opt ...Opt) (string, string, error) {
	o, err := applyOpts(defaults, opt...)
	if err != nil {
		return "", "", err
	}
	code, _ := LanguageCode(o.language)
	return o.provider, code, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Set the transcription provider (assemblyai, elevenlabs, gowhisper)
func OptProvider(v string) Opt {
	return func(o *opts) error {
		if v == "" {
			return nil
		} else if !slices.Contains(config.Providers, v) {
			return httpresponse.ErrBadRequest.Withf("provider %q not supported", v)
		}
		o.provider = v
		return nil
	}
}

// Set language for transcription, as a name or two or three-letter code
func OptLanguage(v string) Opt {
	return func(o *opts) error {
		if v == "" {
			return nil
		} else if code, _ := LanguageCode(v); code == "" {
			return httpresponse.ErrBadRequest.Withf("language %q not supported", v)
		}
		o.language = v
		return nil
	}
}

// Set the number of speakers expected in the audio
func OptSpeakers(v uint64) Opt {
	return func(o *opts) error {
		o.speakers = v
		return nil
	}
}

// Set path for the file to be transcribed
func OptPath(v string) Opt {
	return func(o *opts) error {
		o.path = v
		return nil
	}
}
