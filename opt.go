package callreview

import (
	// Packages
	errors "github.com/djthorpe/go-errors"
	logrus "github.com/sirupsen/logrus"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Service) error

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Set the transcription service
func OptTranscriber(v Transcriber) Opt {
	return func(s *Service) error {
		if v == nil {
			return errors.ErrBadParameter.With("transcriber is nil")
		}
		s.transcriber = v
		return nil
	}
}

// Set the report generator
func OptReporter(v Reporter) Opt {
	return func(s *Service) error {
		if v == nil {
			return errors.ErrBadParameter.With("reporter is nil")
		}
		s.reporter = v
		return nil
	}
}

// Set the receiver for pipeline events
func OptPublisher(v Publisher) Opt {
	return func(s *Service) error {
		if v == nil {
			return errors.ErrBadParameter.With("publisher is nil")
		}
		s.publisher = v
		return nil
	}
}

// Set the logger
func OptLogger(v *logrus.Entry) Opt {
	return func(s *Service) error {
		if v == nil {
			return errors.ErrBadParameter.With("logger is nil")
		}
		s.log = v
		return nil
	}
}
