package wav

import (
	"io"

	// Packages
	audio "github.com/go-audio/audio"
	wav "github.com/go-audio/wav"
)

// WriteInt16 encodes mono 16-bit signed samples as a WAV file
func WriteInt16(w io.WriteSeeker, data []int16, sampleRate int) error {
	encoder := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	samples := make([]int, len(data))
	for i, v := range data {
		samples[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Data:           samples,
		SourceBitDepth: 16,
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
	}
	if err := encoder.Write(buf); err != nil {
		return err
	}
	return encoder.Close()
}
