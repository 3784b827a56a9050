package api

import (
	"context"
	"errors"
	"net/http"

	// Packages
	"github.com/mutablelogic/go-callreview"
	"github.com/mutablelogic/go-callreview/pkg/client"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-client/pkg/multipart"
	"github.com/mutablelogic/go-server/pkg/httprequest"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type reqUpload struct {
	File     multipart.File `json:"audio_file"`
	Provider string         `json:"provider,omitempty"`
	Language string         `json:"language,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func Upload(ctx context.Context, w http.ResponseWriter, r *http.Request, service *callreview.Service) error {
	// Read the request
	var req reqUpload
	if err := httprequest.Read(r, &req); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest, err.Error())
	} else if req.File.Body == nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest, "missing audio_file")
	}

	// Check the options before the upload is sent anywhere
	opts := []client.Opt{
		client.OptProvider(req.Provider),
		client.OptLanguage(req.Language),
	}
	if _, _, err := client.Resolve(service.Config().Transcription, opts...); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest, err.Error())
	}

	// Run the pipeline
	report, err := service.Analyze(ctx, req.File.Body, req.File.Path, opts...)
	if err != nil {
		return errorResponse(w, err)
	}

	// Return the report
	return httpresponse.JSON(w, http.StatusOK, 2, report)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Failures of the providers, or utterances they returned which could not be
// used, are gateway errors
func errorResponse(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, schema.ErrTranscriptionFailed), errors.Is(err, schema.ErrReportGenerationFailed), errors.Is(err, schema.ErrInvalidUtterance):
		return httpresponse.Error(w, httpresponse.ErrGatewayError, err.Error())
	default:
		return httpresponse.Error(w, httpresponse.ErrInternalError, err.Error())
	}
}
