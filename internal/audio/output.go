package audio

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
)

// Output plays a tone to completion.
type Output interface {
	Play(tone Tone) error
}

type otoOutput struct {
	context *oto.Context
	mu      sync.Mutex
	cache   map[Tone][]byte
}

// NewOtoOutput opens the default audio device.
func NewOtoOutput() (Output, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, errors.Wrap(err, "open audio device")
	}
	<-ready
	return &otoOutput{context: context, cache: make(map[Tone][]byte)}, nil
}

func (output *otoOutput) Play(tone Tone) error {
	player := output.context.NewPlayer(bytes.NewReader(output.pcm(tone)))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Close(); err != nil {
		return errors.Wrap(err, "close audio player")
	}
	return nil
}

func (output *otoOutput) pcm(tone Tone) []byte {
	output.mu.Lock()
	defer output.mu.Unlock()

	if cached, ok := output.cache[tone]; ok {
		return cached
	}
	rendered := tone.Synthesize(SampleRate)
	output.cache[tone] = rendered
	return rendered
}

type bellOutput struct {
	writer io.Writer
}

// NewBellOutput rings the terminal bell once per pulse.
func NewBellOutput(writer io.Writer) Output {
	return &bellOutput{writer: writer}
}

func (output *bellOutput) Play(tone Tone) error {
	for pulse := 0; pulse < tone.Pulses; pulse++ {
		if pulse > 0 {
			time.Sleep(tone.Gap)
		}
		if _, err := io.WriteString(output.writer, "\a"); err != nil {
			return errors.Wrap(err, "ring bell")
		}
	}
	return nil
}
