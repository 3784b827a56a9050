package assemblyai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/retry"
	"github.com/mutablelogic/go-client"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
)

/////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultPollInterval = 3 * time.Second
)

/////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Upload streams the audio to the upload endpoint and returns the private
// url which can be used to submit a transcript
func (c *Client) Upload(ctx context.Context, r io.Reader) (string, error) {
	var response uploadResponse
	if r == nil {
		return "", fmt.Errorf("file is required")
	}
	if err := c.DoWithContext(ctx, upload{r}, &response, client.OptPath(UploadPath), client.OptNoTimeout()); err != nil {
		return "", err
	} else if response.UploadUrl == "" {
		return "", httpresponse.ErrGatewayError.With("upload returned no url")
	}

	// Return success
	return response.UploadUrl, nil
}

// Submit queues a transcript for an uploaded file
func (c *Client) Submit(ctx context.Context, req TranscriptRequest) (*Transcript, error) {
	var response Transcript
	if req.AudioUrl == "" {
		return nil, fmt.Errorf("audio_url is required")
	}
	if payload, err := client.NewJSONRequest(req); err != nil {
		return nil, err
	} else if err := c.DoWithContext(ctx, payload, &response, client.OptPath(TranscriptPath)); err != nil {
		return nil, err
	}

	// Return success
	return &response, nil
}

// Get returns the current state of a transcript
func (c *Client) Get(ctx context.Context, id string) (*Transcript, error) {
	var response Transcript
	if err := c.DoWithContext(ctx, client.MethodGet, &response, client.OptPath(TranscriptPath, id)); err != nil {
		return nil, err
	}
	return &response, nil
}

// Wait polls the transcript every interval until it is completed or has
// failed, or the context is done. Transient polling errors are retried.
func (c *Client) Wait(ctx context.Context, id string, interval time.Duration) (*Transcript, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	backoff := retry.Config{
		MaxRetries:  retry.DefaultMaxRetries,
		BaseDelay:   interval,
		MaxDelay:    interval * 4,
		IsRetryable: retry.IsTransient,
	}

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transcript %q: %w", id, ctx.Err())
		case <-timer.C:
		}

		var transcript *Transcript
		if err := retry.Do(ctx, backoff, func() error {
			t, err := c.Get(ctx, id)
			if err != nil {
				return err
			}
			transcript = t
			return nil
		}); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("transcript %q: %w", id, err)
			}
			return nil, err
		}

		switch transcript.Status {
		case StatusCompleted:
			return transcript, nil
		case StatusError:
			return nil, httpresponse.ErrGatewayError.Withf("transcript %q: %s", id, transcript.Error)
		}
		timer.Reset(interval)
	}
}

// Transcribe uploads the audio, submits the transcript and waits for the
// result
func (c *Client) Transcribe(ctx context.Context, r io.Reader, req TranscriptRequest, interval time.Duration) (*Transcript, error) {
	if url, err := c.Upload(ctx, r); err != nil {
		return nil, err
	} else {
		req.AudioUrl = url
	}

	// Speaker labels are always requested
	req.SpeakerLabels = true
	if transcript, err := c.Submit(ctx, req); err != nil {
		return nil, err
	} else if transcript.Id == "" {
		return nil, httpresponse.ErrGatewayError.With("transcript has no id")
	} else {
		return c.Wait(ctx, transcript.Id, interval)
	}
}
