package audio

import (
	"io"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// maxQueuedTones bounds alerts waiting behind the one being played.
const maxQueuedTones = 8

// Player turns alert requests into tones. Mute state lives here, outside
// the countdown engine. Tones play one at a time in request order; callers
// never wait for playback.
type Player struct {
	mu       sync.Mutex
	muted    bool
	queue    []Tone
	draining bool
	output   Output
	pool     *ants.Pool
	log      *logrus.Entry
}

// NewPlayer creates a player. A nil output makes the player silent.
func NewPlayer(output Output, logger *logrus.Entry) (*Player, error) {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = logrus.NewEntry(discard)
	}

	// One worker drains the queue so tones never overlap.
	pool, err := ants.NewPool(1, ants.WithMaxBlockingTasks(1))
	if err != nil {
		return nil, err
	}

	return &Player{
		output: output,
		pool:   pool,
		log:    logger,
	}, nil
}

// ReminderAlert plays the reminder tone unless muted.
func (player *Player) ReminderAlert() {
	player.play(ReminderTone)
}

// EndAlert plays the end tone unless muted.
func (player *Player) EndAlert() {
	player.play(EndTone)
}

// SetMuted sets the mute state.
func (player *Player) SetMuted(muted bool) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.muted = muted
}

// Muted reports the mute state.
func (player *Player) Muted() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.muted
}

// ToggleMuted flips the mute state and returns the new value.
func (player *Player) ToggleMuted() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.muted = !player.muted
	return player.muted
}

// Close releases the worker pool without waiting for a playing tone.
func (player *Player) Close() {
	player.pool.Release()
}

// CloseWait releases the worker pool and waits up to timeout for queued
// tones to finish.
func (player *Player) CloseWait(timeout time.Duration) error {
	return player.pool.ReleaseTimeout(timeout)
}

func (player *Player) play(tone Tone) {
	if player.output == nil {
		return
	}

	player.mu.Lock()
	if player.muted {
		player.mu.Unlock()
		return
	}
	if len(player.queue) >= maxQueuedTones {
		player.mu.Unlock()
		player.log.WithField("frequency", tone.Frequency).Warn("tone queue full")
		return
	}
	player.queue = append(player.queue, tone)
	if player.draining {
		player.mu.Unlock()
		return
	}
	player.draining = true
	player.mu.Unlock()

	// The worker only blocks Submit while a finished drain is returning.
	if err := player.pool.Submit(player.drain); err != nil {
		player.mu.Lock()
		player.queue = nil
		player.draining = false
		player.mu.Unlock()
		player.log.WithError(err).Warn("tone dropped")
	}
}

func (player *Player) drain() {
	for {
		player.mu.Lock()
		if len(player.queue) == 0 || player.muted {
			player.queue = nil
			player.draining = false
			player.mu.Unlock()
			return
		}
		tone := player.queue[0]
		player.queue = player.queue[1:]
		player.mu.Unlock()

		if err := player.output.Play(tone); err != nil {
			player.log.WithError(err).Warn("play tone")
		}
	}
}
