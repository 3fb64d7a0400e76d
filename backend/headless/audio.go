package headless

import (
	"fmt"

	"github.com/hearthlib/hearth/backend"
)

// Audio is a silent audio device: voices track play/pause state and
// volumes without producing sound.
type Audio struct {
	inited bool
	closed bool
	volume float64

	// VoicesCreated counts NewVoice calls. Test observability.
	VoicesCreated int
}

// NewAudio returns an unopened headless audio device.
func NewAudio() *Audio { return &Audio{volume: 1} }

// Name implements backend.Audio.
func (a *Audio) Name() string { return backend.BackendHeadless }

// Init implements backend.Audio.
func (a *Audio) Init() error {
	if a.closed {
		return backend.ErrClosed
	}
	a.inited = true
	backend.Logger().Debug("headless audio ready")
	return nil
}

// NewVoice implements backend.Audio.
func (a *Audio) NewVoice(s backend.Sound) (backend.Voice, error) {
	if a.closed {
		return nil, backend.ErrClosed
	}
	if !a.inited {
		return nil, backend.ErrNotInitialized
	}
	if s.SampleRate <= 0 || s.Channels <= 0 {
		return nil, fmt.Errorf("headless: bad sound format %d Hz * %d ch", s.SampleRate, s.Channels)
	}
	a.VoicesCreated++
	return &voice{volume: 1}, nil
}

// SetMasterVolume implements backend.Audio.
func (a *Audio) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	a.volume = v
}

// MasterVolume returns the current master volume. Test observability.
func (a *Audio) MasterVolume() float64 { return a.volume }

// Opened reports whether Init ran. Test observability.
func (a *Audio) Opened() bool { return a.inited && !a.closed }

// Close implements backend.Audio.
func (a *Audio) Close() error {
	a.closed = true
	return nil
}

type voice struct {
	playing bool
	closed  bool
	volume  float64
}

func (v *voice) Play() {
	if !v.closed {
		v.playing = true
	}
}

func (v *voice) Pause() { v.playing = false }

func (v *voice) IsPlaying() bool { return v.playing && !v.closed }

func (v *voice) SetVolume(vol float64) {
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	v.volume = vol
}

func (v *voice) Close() error {
	v.playing = false
	v.closed = true
	return nil
}
