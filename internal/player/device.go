package player

import (
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Device abstracts the audio output so the playback state machine can be
// exercised without real hardware.
type Device interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
}

// SpeakerDevice plays through the default system output via beep's speaker.
type SpeakerDevice struct{}

func (SpeakerDevice) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (SpeakerDevice) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (SpeakerDevice) Clear() {
	speaker.Clear()
}
