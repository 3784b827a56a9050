package gowhisper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	// Packages
	"github.com/mutablelogic/go-client"
	"github.com/mutablelogic/go-server/pkg/types"
)

/////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Transcribe performs a diarized transcription request in the language of
// the speech
func (c *Client) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	var response TranscriptionResponse

	// Check file, set path if not provided
	if req.File.Body == nil {
		return nil, fmt.Errorf("file is required")
	} else if req.File.Path == "" {
		if f, ok := req.File.Body.(*os.File); ok {
			req.File.Path = filepath.Base(f.Name())
		} else {
			req.File.Path = "audio.wav"
		}
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	if req.Format == nil {
		req.Format = types.StringPtr(FormatJson)
	}
	if req.Diarize == nil {
		req.Diarize = types.BoolPtr(true)
	}

	// Create multipart request, and execute it
	if payload, err := client.NewMultipartRequest(req, client.ContentTypeAny); err != nil {
		return nil, err
	} else if err := c.DoWithContext(ctx, payload, &response, client.OptPath(TranscribePath), client.OptNoTimeout()); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}
