package retry

import (
	"errors"
	"io"
	"net"
	"net/http"
	"regexp"
	"strconv"

	// Packages
	goerrors "github.com/djthorpe/go-errors"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// go-client reports a non-2xx response as ErrUnexpectedResponse followed by
// the response status line
var reStatus = regexp.MustCompile(`ErrUnexpectedResponse: (\d{3}) `)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// StatusCode returns the HTTP status carried by an error, or zero if the
// error does not carry one
func StatusCode(err error) int {
	var code httpresponse.Err
	if errors.As(err, &code) {
		return int(code)
	}
	if !errors.Is(err, goerrors.ErrUnexpectedResponse) {
		return 0
	}
	if match := reStatus.FindStringSubmatch(err.Error()); match != nil {
		if code, err := strconv.Atoi(match[1]); err == nil {
			return code
		}
	}
	return 0
}

// IsTransient reports whether a call to a remote service may succeed when
// repeated: network failures, and responses with status 408, 429 or 5xx.
// Any other error, including a 4xx response, is not retried.
func IsTransient(err error) bool {
	if !IsRetryable(err) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	switch code := StatusCode(err); {
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}
