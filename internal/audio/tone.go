package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// SampleRate is the PCM rate used for every tone.
const SampleRate = 44100

const (
	peakGain    = 0.4
	silentGain  = 0.0001
	attackTime  = 20 * time.Millisecond
	releaseTail = 50 * time.Millisecond
)

// Tone describes a beep sequence: Pulses sine pulses of Duration, each
// starting Gap after the previous one.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Gap       time.Duration
	Pulses    int
}

var (
	// ReminderTone is a single short high beep.
	ReminderTone = Tone{Frequency: 1040, Duration: 160 * time.Millisecond, Gap: 250 * time.Millisecond, Pulses: 1}
	// EndTone is the two-pulse end-of-countdown signal.
	EndTone = Tone{Frequency: 740, Duration: 200 * time.Millisecond, Gap: 350 * time.Millisecond, Pulses: 2}
)

// Length returns the total playback time including the release tail.
func (tone Tone) Length() time.Duration {
	if tone.Pulses <= 0 {
		return 0
	}
	return time.Duration(tone.Pulses-1)*tone.Gap + tone.Duration + releaseTail
}

// Synthesize renders the tone as mono signed 16-bit little-endian PCM.
func (tone Tone) Synthesize(sampleRate int) []byte {
	samples := int(tone.Length().Seconds() * float64(sampleRate))
	pcm := make([]byte, samples*2)

	for pulse := 0; pulse < tone.Pulses; pulse++ {
		start := (time.Duration(pulse) * tone.Gap).Seconds()
		for index := 0; index < samples; index++ {
			at := float64(index)/float64(sampleRate) - start
			gain := tone.envelope(at)
			if gain == 0 {
				continue
			}
			value := gain * math.Sin(2*math.Pi*tone.Frequency*at)
			offset := index * 2
			current := float64(int16(binary.LittleEndian.Uint16(pcm[offset:])))
			mixed := clamp(current+value*math.MaxInt16, math.MinInt16, math.MaxInt16)
			binary.LittleEndian.PutUint16(pcm[offset:], uint16(int16(mixed)))
		}
	}
	return pcm
}

// envelope ramps exponentially up to the peak and back down within one pulse.
func (tone Tone) envelope(at float64) float64 {
	duration := tone.Duration.Seconds()
	attack := attackTime.Seconds()
	if at < 0 || at > duration {
		return 0
	}
	if at < attack {
		return silentGain * math.Pow(peakGain/silentGain, at/attack)
	}
	return peakGain * math.Pow(silentGain/peakGain, (at-attack)/(duration-attack))
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}
