// package player provides single-stream local audio playback (mp3, wav, ogg, flac)
package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
	"github.com/jabberjabberjabber/llm-jukebox/internal/shared"
)

type decodeFunc func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

// decoders maps an audio file extension to its decoder. Extensions outside
// this map are rejected before the file is opened.
var decoders = map[string]decodeFunc{
	".mp3": mp3.Decode,
	".ogg": vorbis.Decode,
	".wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return wav.Decode(rc)
	},
	".flac": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
		return flac.Decode(rc)
	},
}

// Player drives at most one audio stream at a time. Starting a new track
// replaces whatever is currently playing. The output device is initialized
// lazily on the first successful play and keeps its original sample rate;
// later tracks at other rates are resampled.
type Player struct {
	mu sync.Mutex

	device       Device
	bufferMillis int
	logger       *log.Logger

	initialized bool
	baseRate    beep.SampleRate
	current     *models.Track
	stream      beep.StreamSeekCloser
	done        chan struct{}
}

// NewPlayer creates a stopped player on the given output device.
func NewPlayer(device Device, cfg *shared.Config, logger *log.Logger) *Player {
	bufferMillis := cfg.Player.BufferMillis
	if bufferMillis <= 0 {
		bufferMillis = 100
	}

	return &Player{
		device:       device,
		bufferMillis: bufferMillis,
		logger:       logger,
	}
}

// Supported reports whether a file path has a playable extension.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Play starts the track, stopping any current playback first. The failure
// modes are distinguishable by sentinel: a missing file is
// [shared.ErrNotFound], an unplayable extension is
// [shared.ErrUnsupportedFormat], and a decode or device failure is
// [shared.ErrPlayback]. The player is idle after any failure.
func (p *Player) Play(track *models.Track) error {
	if track == nil || track.FilePath == "" {
		return fmt.Errorf("%w: no file to play", shared.ErrInvalidInput)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	decode, ok := decoders[strings.ToLower(filepath.Ext(track.FilePath))]
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, filepath.Ext(track.FilePath))
	}

	p.stopLocked()

	file, err := os.Open(track.FilePath)
	if err != nil {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, track.FilePath)
	}

	stream, format, err := decode(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("%w: decoding %s: %v", shared.ErrPlayback, track.Filename(), err)
	}

	if !p.initialized {
		bufferSize := format.SampleRate.N(time.Duration(p.bufferMillis) * time.Millisecond)
		if err := p.device.Init(format.SampleRate, bufferSize); err != nil {
			stream.Close()
			return fmt.Errorf("%w: initializing output: %v", shared.ErrPlayback, err)
		}

		p.initialized = true
		p.baseRate = format.SampleRate
	}

	var streamer beep.Streamer = stream
	if format.SampleRate != p.baseRate {
		streamer = beep.Resample(4, format.SampleRate, p.baseRate, stream)
	}

	// The callback runs on the speaker's goroutine while it holds its own
	// lock, so the teardown has to happen off that goroutine: Stop may hold
	// p.mu while waiting on the speaker lock inside Clear.
	done := make(chan struct{})
	p.device.Play(beep.Seq(streamer, beep.Callback(func() {
		go p.drained(done)
	})))

	p.current = track
	p.stream = stream
	p.done = done

	p.logger.Info("playing", "title", track.Title, "artist", track.Artist)

	return nil
}

// Stop halts playback. It reports whether anything was actually playing;
// stopping an idle or never-initialized player is not an error.
func (p *Player) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return false
	}

	p.logger.Info("stopping playback", "title", p.current.Title)
	p.stopLocked()

	return true
}

// NowPlaying returns the current track, or nil when idle.
func (p *Player) NowPlaying() *models.Track {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current
}

// Wait blocks until the current track finishes, is stopped, or the context
// ends. Returns immediately when nothing is playing.
func (p *Player) Wait(ctx context.Context) error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stopLocked tears down the current stream. Callers hold p.mu.
func (p *Player) stopLocked() {
	if p.current == nil {
		return
	}

	if p.initialized {
		p.device.Clear()
	}

	p.clearLocked()
}

// drained clears player state after a stream plays out on its own. The done
// channel identifies the playback: a stop or replacement may already have
// cleared it, or started another stream of the same track.
func (p *Player) drained(done chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done != done {
		return
	}

	p.clearLocked()
}

// clearLocked closes the stream and releases any waiters. The done channel
// is closed by exactly one of Stop, Play, or the drain callback, whichever
// observes the track first. Callers hold p.mu.
func (p *Player) clearLocked() {
	if p.stream != nil {
		p.stream.Close()
	}

	if p.done != nil {
		close(p.done)
	}

	p.current = nil
	p.stream = nil
	p.done = nil
}
