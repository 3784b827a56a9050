package api

import (
	"net/http"
	"os"

	// Packages
	"github.com/mutablelogic/go-callreview"
	"github.com/mutablelogic/go-callreview/pkg/event"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
	"github.com/mutablelogic/go-server/pkg/logger"
	"github.com/mutablelogic/go-server/pkg/types"
)

/////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func RegisterEndpoints(base string, service *callreview.Service, hub *event.Hub, mux *http.ServeMux, debug bool) *http.ServeMux {
	// Create a new router
	if mux == nil {
		mux = http.NewServeMux()
	}

	// Create a logger
	logger := logger.New(os.Stderr, logger.Term, debug)

	// Not Found: GET /
	//   returns a not found response
	mux.HandleFunc("/", logger.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		httpresponse.Error(w, httpresponse.ErrNotFound, r.URL.Path)
	}))

	// Health: GET /v1/health
	//   returns an empty OK response
	mux.HandleFunc(types.JoinPath(base, "health"), logger.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		switch r.Method {
		case http.MethodGet:
			httpresponse.Empty(w, http.StatusOK)
		default:
			httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}))

	// Upload: POST /v1/upload
	//   transcribes a call recording in the audio_file field and returns the
	//   classified transcript and review report
	mux.HandleFunc(types.JoinPath(base, "upload"), logger.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		switch r.Method {
		case http.MethodPost:
			Upload(r.Context(), w, r, service)
		default:
			httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}))

	// Transcript: POST /v1/transcript
	//   merges and classifies a transcript which has already been produced
	mux.HandleFunc(types.JoinPath(base, "transcript"), logger.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		switch r.Method {
		case http.MethodPost:
			Transcript(w, r, service)
		default:
			httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}))

	// Events: GET /v1/events
	//   upgrades to a websocket which receives pipeline events. Not wrapped
	//   by the logger, which does not support hijacking the connection
	mux.HandleFunc(types.JoinPath(base, "events"), func(w http.ResponseWriter, r *http.Request) {
		switch {
		case hub == nil:
			httpresponse.Error(w, httpresponse.ErrNotImplemented, "events are disabled")
		case r.Method != http.MethodGet:
			httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		default:
			hub.ServeHTTP(w, r)
		}
	})

	// Return mux
	return mux
}
