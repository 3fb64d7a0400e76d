// Package oto provides the audio adapter, built on ebitengine/oto.
//
// oto allows exactly one device context per process, opened at a fixed
// format. The adapter opens it at 48 kHz stereo signed 16-bit; sounds
// must already be in that format (resampling is an asset pipeline
// concern). Importing the package registers the adapter under the name
// "oto".
package oto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hearthlib/hearth/backend"
)

// Device format. One oto context serves the whole process, so the
// format is fixed rather than negotiated per sound.
const (
	SampleRate = 48000
	Channels   = 2
)

// initTimeout bounds the wait for the platform audio server during
// Init. Audio is acquired lazily, so a hung server must not stall the
// game mid-session for long.
const initTimeout = 5 * time.Second

// otoContext is process-global because oto.NewContext can only succeed
// once. The first adapter Init fills it; later adapters reuse it.
var otoContext *oto.Context

// Audio is the oto-backed audio device.
type Audio struct {
	inited bool
	closed bool
	ctx    *oto.Context

	volume float64
	voices []*voice
}

// NewAudio returns an unopened oto audio device.
func NewAudio() *Audio { return &Audio{volume: 1} }

// Name implements backend.Audio.
func (a *Audio) Name() string { return backend.BackendOto }

// Init implements backend.Audio. It opens (or reuses) the process-wide
// oto context and waits for the platform audio server to come up.
func (a *Audio) Init() error {
	if a.closed {
		return backend.ErrClosed
	}
	if a.inited {
		return nil
	}
	if otoContext == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return fmt.Errorf("oto: open device: %w", err)
		}
		select {
		case <-ready:
		case <-time.After(initTimeout):
			return fmt.Errorf("oto: audio server not ready after %v", initTimeout)
		}
		otoContext = ctx
	}
	a.ctx = otoContext
	a.inited = true
	backend.Logger().Debug("oto audio ready", "sample_rate", SampleRate, "channels", Channels)
	return nil
}

// NewVoice implements backend.Audio. The sound must match the device
// format; convert at load time if it does not.
func (a *Audio) NewVoice(s backend.Sound) (backend.Voice, error) {
	if a.closed {
		return nil, backend.ErrClosed
	}
	if !a.inited {
		return nil, backend.ErrNotInitialized
	}
	if s.SampleRate != SampleRate || s.Channels != Channels {
		return nil, fmt.Errorf("oto: sound is %d Hz * %d ch, device runs %d Hz * %d ch",
			s.SampleRate, s.Channels, SampleRate, Channels)
	}
	if len(s.Data) == 0 {
		return nil, fmt.Errorf("oto: empty sound")
	}
	v := &voice{
		player: a.ctx.NewPlayer(bytes.NewReader(s.Data)),
		volume: 1,
	}
	v.applyVolume(a.volume)
	a.voices = append(a.voices, v)
	return v, nil
}

// SetMasterVolume implements backend.Audio, rescaling every live voice.
func (a *Audio) SetMasterVolume(vol float64) {
	a.volume = clampVolume(vol)
	for _, v := range a.voices {
		if !v.closed {
			v.applyVolume(a.volume)
		}
	}
}

// Close implements backend.Audio. The oto context itself cannot be torn
// down, so Close stops the voices and suspends the device.
func (a *Audio) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	for _, v := range a.voices {
		v.Close()
	}
	a.voices = nil
	if a.inited {
		if err := a.ctx.Suspend(); err != nil {
			return fmt.Errorf("oto: suspend: %w", err)
		}
	}
	return nil
}

// voice wraps one oto player. Master volume multiplies the per-voice
// volume; the product is what the player hears.
type voice struct {
	player *oto.Player
	volume float64
	master float64
	closed bool
}

func (v *voice) Play() {
	if !v.closed && !v.player.IsPlaying() {
		v.player.Play()
	}
}

func (v *voice) Pause() {
	if !v.closed {
		v.player.Pause()
	}
}

func (v *voice) IsPlaying() bool { return !v.closed && v.player.IsPlaying() }

func (v *voice) SetVolume(vol float64) {
	v.volume = clampVolume(vol)
	if !v.closed {
		v.player.SetVolume(v.volume * v.master)
	}
}

func (v *voice) applyVolume(master float64) {
	v.master = master
	v.player.SetVolume(v.volume * v.master)
}

func (v *voice) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	return v.player.Close()
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
