package audio

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Device owns the raylib audio device and every sound loaded through it
type Device struct {
	mu     sync.Mutex
	sounds []*Sound
	logger *zap.Logger
}

// Open initializes the audio device
func Open(logger *zap.Logger) *Device {
	rl.InitAudioDevice()
	logger.Info("audio device ready", zap.Bool("ready", rl.IsAudioDeviceReady()))
	return &Device{logger: logger}
}

// Close unloads all sounds and shuts the device down
func (d *Device) Close() {
	d.mu.Lock()
	for _, s := range d.sounds {
		rl.UnloadSound(s.sound)
	}
	d.sounds = nil
	d.mu.Unlock()
	rl.CloseAudioDevice()
}

// Sound is a single-voice clip. Restart rewinds it, so overlapping triggers
// cut the previous playback short instead of mixing.
type Sound struct {
	sound  rl.Sound
	volume float32
	plays  int
}

// Load reads a sound file from disk
func (d *Device) Load(path string, volume float32) (*Sound, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("load sound: %w", err)
	}
	sound := rl.LoadSound(path)
	if !rl.IsSoundValid(sound) {
		return nil, fmt.Errorf("load sound %s: unsupported or corrupt file", path)
	}
	return d.track(sound, volume), nil
}

// LoadSamples turns mono 16-bit PCM into a sound
func (d *Device) LoadSamples(samples []int16, sampleRate int, volume float32) (*Sound, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("load samples: empty")
	}
	data := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(v))
	}
	wave := rl.NewWave(uint32(len(samples)), uint32(sampleRate), 16, 1, data)
	sound := rl.LoadSoundFromWave(wave)
	if !rl.IsSoundValid(sound) {
		return nil, fmt.Errorf("load samples: audio device rejected %d samples", len(samples))
	}
	return d.track(sound, volume), nil
}

func (d *Device) track(sound rl.Sound, volume float32) *Sound {
	rl.SetSoundVolume(sound, volume)
	s := &Sound{sound: sound, volume: volume}
	d.mu.Lock()
	d.sounds = append(d.sounds, s)
	d.mu.Unlock()
	return s
}

// Restart plays the sound from the beginning
func (s *Sound) Restart() {
	rl.StopSound(s.sound)
	rl.PlaySound(s.sound)
	s.plays++
}

func (s *Sound) Plays() int {
	return s.plays
}

// Silent stands in when no sound could be loaded
type Silent struct {
	plays int
}

func (s *Silent) Restart() {
	s.plays++
}

func (s *Silent) Plays() int {
	return s.plays
}

// Player is what callers get back from LoadOrSynth
type Player interface {
	Restart()
	Plays() int
}

// LoadOrSynth loads path, falling back to a synthesized knock and then to a
// silent player. A missing impact sound never stops the program.
func (d *Device) LoadOrSynth(path string, volume float32) Player {
	s, err := d.Load(path, volume)
	if err == nil {
		d.logger.Debug("sound loaded", zap.String("path", path))
		return s
	}
	d.logger.Info("impact sound file unavailable, using synthesized knock",
		zap.String("path", path), zap.Error(err))

	s, err = d.LoadSamples(Knock(SampleRate), SampleRate, volume)
	if err != nil {
		d.logger.Warn("impact sound unavailable, continuing without audio", zap.Error(err))
		return &Silent{}
	}
	return s
}
