package dialogue

import (
	"fmt"
	"io"
	"strings"

	// Packages
	errors "github.com/djthorpe/go-errors"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-server/pkg/types"
)

//////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	FormatJson = "json"
	FormatText = "text"
	FormatSrt  = "srt"
	FormatVtt  = "vtt"
)

const (
	ContentTypeSrt = "application/x-subrip"
	ContentTypeVtt = "text/vtt"
)

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ContentType returns the mime type for an export format, or
// ErrBadParameter for an unknown format
func ContentType(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJson, "":
		return types.ContentTypeJSON, nil
	case FormatText:
		return types.ContentTypeTextPlain, nil
	case FormatSrt:
		return ContentTypeSrt, nil
	case FormatVtt:
		return ContentTypeVtt, nil
	}
	return "", errors.ErrBadParameter.Withf("invalid format: %q", format)
}

// WriteSRT writes the turns as SubRip cues, numbered from one
func WriteSRT(w io.Writer, turns []schema.Turn) {
	for i, turn := range turns {
		turn.WriteSRT(w, i+1)
	}
}

// WriteVTT writes the turns as a WebVTT document
func WriteVTT(w io.Writer, turns []schema.Turn) {
	fmt.Fprint(w, "WEBVTT\n\n")
	for _, turn := range turns {
		turn.WriteVTT(w)
	}
}

// Write writes the turns in the text, srt or vtt format
func Write(w io.Writer, format string, turns []schema.Turn) error {
	switch strings.ToLower(format) {
	case FormatText:
		fmt.Fprintln(w, Format(turns))
	case FormatSrt:
		WriteSRT(w, turns)
	case FormatVtt:
		WriteVTT(w, turns)
	default:
		return errors.ErrBadParameter.Withf("invalid format: %q", format)
	}
	return nil
}
