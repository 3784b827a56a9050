// Package callreview reviews call-center recordings: the audio is
// transcribed with speaker labels, the speakers are assigned operator and
// customer roles, fragments are merged into turns and the resulting dialogue
// is sent to a language model for a quality report.
package callreview

import (
	"context"
	"fmt"
	"io"
	"time"

	// Packages
	uuid "github.com/google/uuid"
	client "github.com/mutablelogic/go-callreview/pkg/client"
	config "github.com/mutablelogic/go-callreview/pkg/config"
	dialogue "github.com/mutablelogic/go-callreview/pkg/dialogue"
	schema "github.com/mutablelogic/go-callreview/pkg/schema"
	wav "github.com/mutablelogic/go-callreview/pkg/wav"
	logrus "github.com/sirupsen/logrus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Transcriber returns the speaker-labeled utterances of an audio file
type Transcriber interface {
	Transcribe(ctx context.Context, r io.Reader, opt ...client.Opt) ([]schema.Utterance, error)
}

// Reporter returns a review of a formatted transcript
type Reporter interface {
	Report(ctx context.Context, transcript string) (string, error)
}

// Publisher receives events as a call moves through the pipeline
type Publisher interface {
	Publish(schema.Event)
}

type Service struct {
	cfg         config.Config
	classifier  *dialogue.Classifier
	transcriber Transcriber
	reporter    Reporter
	publisher   Publisher
	log         *logrus.Entry
}

type nopPublisher struct{}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a service for the configuration. Without a transcriber or
// reporter, Analyze fails but Process can still be used.
func New(cfg config.Config, opts ...Opt) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	self := new(Service)
	self.cfg = cfg
	self.classifier = dialogue.NewClassifier(cfg.Classifier.Phrases...)
	self.publisher = nopPublisher{}
	self.log = logrus.NewEntry(logrus.StandardLogger())
	for _, opt := range opts {
		if err := opt(self); err != nil {
			return nil, err
		}
	}

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Config returns the configuration of the service
func (s *Service) Config() config.Config {
	return s.cfg
}

// Process validates the utterances, merges fragments and assigns roles
func (s *Service) Process(utterances []schema.Utterance) ([]schema.Turn, error) {
	return s.ProcessWithMinWords(utterances, s.cfg.Merge.MinWords)
}

// ProcessWithMinWords is Process with a different fragment threshold
func (s *Service) ProcessWithMinWords(utterances []schema.Utterance, minWords int) ([]schema.Turn, error) {
	for i, u := range utterances {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("utterance %d: %w", i, err)
		}
	}
	return s.classifier.Classify(dialogue.Merge(utterances, minWords)), nil
}

// Transcribe returns the classified turns of an audio file, without a report
func (s *Service) Transcribe(ctx context.Context, r io.Reader, name string, opt ...client.Opt) ([]schema.Turn, error) {
	utterances, err := s.transcribe(ctx, s.log.WithField("file", name), r, name, opt...)
	if err != nil {
		return nil, err
	}
	return s.Process(utterances)
}

// Analyze runs the whole pipeline on an audio file and returns the report.
// The name is used as the file name sent to the transcription provider.
func (s *Service) Analyze(ctx context.Context, r io.Reader, name string, opt ...client.Opt) (*schema.Report, error) {
	report := &schema.Report{
		Id:       uuid.NewString(),
		Filename: name,
		Created:  time.Now(),
	}
	log := s.log.WithFields(logrus.Fields{"id": report.Id, "file": name})

	// Provider and language
	if provider, language, err := client.Resolve(s.cfg.Transcription, opt...); err != nil {
		return nil, err
	} else {
		report.Provider = provider
		report.Language = language
		log = log.WithField("provider", provider)
	}
	s.publish(schema.CallReceivedType, report.Id, name)

	// Fail before any paid call is made
	switch {
	case s.transcriber == nil:
		return nil, s.fail(log, report.Id, schema.ErrTranscriptionFailed.With("no transcriber"))
	case s.reporter == nil:
		return nil, s.fail(log, report.Id, schema.ErrReportGenerationFailed.With("no reporter"))
	}

	// Duration is only known for wav files
	if rs, ok := r.(io.ReadSeeker); ok {
		if duration, err := wav.Probe(rs); err != nil {
			log.WithError(err).Debug("no duration")
		} else {
			report.Duration = schema.Timestamp(duration)
		}
	}

	// Transcribe
	utterances, err := s.transcribe(ctx, log, r, name, opt...)
	if err != nil {
		return nil, s.fail(log, report.Id, err)
	}
	s.publish(schema.CallTranscribedType, report.Id, fmt.Sprintf("%d utterances", len(utterances)))

	// Merge and classify
	start := time.Now()
	if turns, err := s.Process(utterances); err != nil {
		return nil, s.fail(log, report.Id, err)
	} else {
		report.Turns = turns
		report.Transcript = dialogue.Format(turns)
	}
	log.WithFields(logrus.Fields{
		"stage":   "classify",
		"elapsed": time.Since(start),
		"turns":   len(report.Turns),
	}).Info("classified")
	s.publish(schema.CallClassifiedType, report.Id, report.Transcript)

	// Generate the report
	start = time.Now()
	if text, err := s.reporter.Report(ctx, report.Transcript); err != nil {
		return nil, s.fail(log, report.Id, schema.ErrReportGenerationFailed.Wrap(err))
	} else {
		report.Report = text
	}
	log.WithFields(logrus.Fields{
		"stage":   "report",
		"elapsed": time.Since(start),
	}).Info("reported")
	s.publish(schema.CallReportType, report.Id, report.Report)

	// Return success
	return report, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Service) transcribe(ctx context.Context, log *logrus.Entry, r io.Reader, name string, opt ...client.Opt) ([]schema.Utterance, error) {
	if s.transcriber == nil {
		return nil, schema.ErrTranscriptionFailed.With("no transcriber")
	}

	start := time.Now()
	utterances, err := s.transcriber.Transcribe(ctx, r, append([]client.Opt{client.OptPath(name)}, opt...)...)
	if err != nil {
		return nil, schema.ErrTranscriptionFailed.Wrap(err)
	} else if len(utterances) == 0 {
		return nil, schema.ErrTranscriptionFailed.With("no speech")
	}
	log.WithFields(logrus.Fields{
		"stage":      "transcribe",
		"elapsed":    time.Since(start),
		"utterances": len(utterances),
	}).Info("transcribed")

	// Return success
	return utterances, nil
}

func (s *Service) publish(kind, id, text string) {
	s.publisher.Publish(schema.Event{Type: kind, Id: id, Text: text})
}

func (s *Service) fail(log *logrus.Entry, id string, err error) error {
	log.WithError(err).Error("analyze failed")
	s.publish(schema.CallErrorType, id, err.Error())
	return err
}

func (nopPublisher) Publish(schema.Event) {}
