package resources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate is the rate audio clips are resampled to when no other
// rate is configured.
const DefaultSampleRate = 44100

// bytesPerFrame is the size of one 16-bit stereo sample frame.
const bytesPerFrame = 4

// AudioClip is a fully decoded clip: 16-bit little-endian stereo PCM at
// SampleRate, ready for audio.Context.NewPlayerFromBytes.
type AudioClip struct {
	Path       string
	SampleRate int
	PCM        []byte
}

// Duration returns the playing time of the clip.
func (c *AudioClip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	frames := len(c.PCM) / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(c.SampleRate)
}

// AudioStrategy decodes WAV, MP3 and Ogg Vorbis files by extension.
type AudioStrategy struct {
	// SampleRate is the output rate. Zero means DefaultSampleRate.
	SampleRate int
}

// Load implements Strategy.
func (s AudioStrategy) Load(ctx context.Context, req Request) (any, error) {
	if len(req.Paths) != 1 {
		return nil, fmt.Errorf("audio: want 1 path, got %d", len(req.Paths))
	}
	p := req.Paths[0]
	sr := s.SampleRate
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	data, err := readAll(ctx, req.Fetcher, p)
	if err != nil {
		return nil, err
	}
	stream, err := decodeAudio(sr, p, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return &AudioClip{Path: p, SampleRate: sr, PCM: pcm}, nil
}

func decodeAudio(sampleRate int, p string, r io.Reader) (io.Reader, error) {
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg", ".oga":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
}
