// Package wav reads and writes the metadata of uncompressed audio files
package wav

import (
	"io"
	"time"

	// Packages
	wav "github.com/go-audio/wav"
	"github.com/mutablelogic/go-server/pkg/httpresponse"
)

// Probe returns the duration of a WAV file from the size of its sample data
// and rewinds the reader. Other formats return a bad request error.
func Probe(r io.ReadSeeker) (time.Duration, error) {
	decoder := wav.NewDecoder(r)
	defer r.Seek(0, io.SeekStart)
	if !decoder.IsValidFile() {
		return 0, httpresponse.ErrBadRequest.With("not a wav file")
	} else if err := decoder.FwdToPCM(); err != nil {
		return 0, err
	}

	bytesPerSec := int64(decoder.SampleRate) * int64(decoder.NumChans) * int64(decoder.BitDepth/8)
	if bytesPerSec == 0 {
		return 0, httpresponse.ErrBadRequest.With("wav file has no sample rate")
	}
	return time.Duration(int64(decoder.PCMSize) * int64(time.Second) / bytesPerSec), nil
}
