package oto

import (
	"github.com/hearthlib/hearth/backend"
)

func init() {
	backend.RegisterAudio(backend.BackendOto, func() backend.Audio {
		return NewAudio()
	})
}
