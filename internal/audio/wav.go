package audio

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// beep v1.4 decodes 16-bit PCM by dividing by 1<<16 - 1, which yields
// half-scale samples. Rescale so full scale is 1.0 again.
const pcm16Correction = 65535.0 / 32767.0

// OpenWAV opens and decodes a WAV file. The caller must close the returned
// streamer, which also closes the file.
func OpenWAV(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if format.Precision == 2 {
		return &gainStreamer{StreamSeekCloser: streamer, gain: pcm16Correction}, format, nil
	}
	return streamer, format, nil
}

// gainStreamer scales every sample of the wrapped streamer by gain
type gainStreamer struct {
	beep.StreamSeekCloser
	gain float64
}

func (g *gainStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.StreamSeekCloser.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= g.gain
		samples[i][1] *= g.gain
	}
	return n, ok
}
