package api

import (
	"bytes"
	"net/http"
	"strconv"

	// Packages
	"github.com/mutablelogic/go-callreview"
	"github.com/mutablelogic/go-callreview/pkg/dialogue"
	"github.com/mutablelogic/go-callreview/pkg/schema"
	"github.com/mutablelogic/go-server/pkg/httprequest"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
	"github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type reqTranscript struct {
	Utterances []schema.Utterance `json:"utterances"`
	MinWords   *int               `json:"min_words,omitempty"`
	Format     *string            `json:"format,omitempty"`
}

type respTranscript struct {
	Turns      []schema.Turn `json:"turns"`
	Transcript string        `json:"transcript"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func Transcript(w http.ResponseWriter, r *http.Request, service *callreview.Service) error {
	var req reqTranscript
	if err := httprequest.Read(r, &req); err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest, err.Error())
	}

	minWords := service.Config().Merge.MinWords
	if req.MinWords != nil {
		if minWords = *req.MinWords; minWords < 0 {
			return httpresponse.Error(w, httpresponse.ErrBadRequest, "min_words must not be negative")
		}
	}

	// Format can be set in the body or the query
	format := r.URL.Query().Get("format")
	if req.Format != nil {
		format = *req.Format
	}
	contentType, err := dialogue.ContentType(format)
	if err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest, err.Error())
	}

	turns, err := service.ProcessWithMinWords(req.Utterances, minWords)
	if err != nil {
		return httpresponse.Error(w, httpresponse.ErrBadRequest, err.Error())
	}

	if contentType == types.ContentTypeJSON {
		return httpresponse.JSON(w, http.StatusOK, 2, respTranscript{
			Turns:      turns,
			Transcript: dialogue.Format(turns),
		})
	}
	return writeTurns(w, contentType, format, turns)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// writeTurns renders the turns into a buffer first, so a rendering error
// can still be returned as a JSON error response
func writeTurns(w http.ResponseWriter, contentType, format string, turns []schema.Turn) error {
	var buf bytes.Buffer
	if err := dialogue.Write(&buf, format, turns); err != nil {
		return httpresponse.Error(w, httpresponse.ErrInternalError, err.Error())
	}
	w.Header().Set(types.ContentTypeHeader, contentType)
	w.Header().Set(types.ContentLengthHeader, strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}
