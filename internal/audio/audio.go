// Package audio plays imageview's sounds through ebiten's audio package.
//
// Sounds are kept as encoded bytes and decoded per playback, so one Sound
// can be started any number of times. Players started with PlayDetached are
// retained by the Player until they finish, independent of the caller.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/gogpu/imageview"
)

// DefaultSampleRate is the mixer sample rate.
const DefaultSampleRate = 44100

// Format is an encoded audio format.
type Format string

// Supported formats.
const (
	FormatVorbis Format = "vorbis"
	FormatWAV    Format = "wav"
	FormatMP3    Format = "mp3"
)

// Errors.
var (
	// ErrUnknownFormat is returned for data that is neither Ogg Vorbis, WAV
	// nor MP3.
	ErrUnknownFormat = errors.New("audio: unknown format")

	// ErrForeignHandle is returned when PlayDetached gets a handle that was
	// not created by this package.
	ErrForeignHandle = errors.New("audio: handle was not created by audio")

	// ErrClosed is returned by PlayDetached after Close.
	ErrClosed = errors.New("audio: player is closed")
)

// stream is a decoded PCM stream.
type stream interface {
	io.ReadSeeker
	Length() int64
}

func decode(f Format, sampleRate int, data []byte) (stream, error) {
	r := bytes.NewReader(data)
	switch f {
	case FormatVorbis:
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	case FormatWAV:
		return wav.DecodeWithSampleRate(sampleRate, r)
	case FormatMP3:
		return mp3.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// DetectFormat identifies data by its magic bytes, falling back to the
// extension of name.
func DetectFormat(name string, data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatVorbis, nil
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WAVE":
		return FormatWAV, nil
	case bytes.HasPrefix(data, []byte("ID3")),
		len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3, nil
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".ogg", ".oga":
		return FormatVorbis, nil
	case ".wav":
		return FormatWAV, nil
	case ".mp3":
		return FormatMP3, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Sound is an encoded sound.
type Sound struct {
	name   string
	format Format
	data   []byte
	length int64
}

var _ imageview.SoundHandle = (*Sound)(nil)

// NewSound identifies and test-decodes data. sampleRate is the rate the
// sound will be resampled to.
func NewSound(name string, data []byte, sampleRate int) (*Sound, error) {
	f, err := DetectFormat(name, data)
	if err != nil {
		return nil, err
	}
	s, err := decode(f, sampleRate, data)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	return &Sound{name: name, format: f, data: data, length: s.Length()}, nil
}

// Name returns the name the sound was loaded under.
func (s *Sound) Name() string { return s.name }

// Format returns the sound's encoding.
func (s *Sound) Format() Format { return s.format }

// Length returns the decoded length in bytes of 16-bit stereo PCM.
func (s *Sound) Length() int64 { return s.length }

// Options configures a Player.
type Options struct {
	SampleRate int
	Volume     float64 // 0..1
	Loop       bool
}

// Player starts detached playback on an ebiten audio context.
//
// Only one Player may exist per process: ebiten allows a single audio
// context.
type Player struct {
	opts  Options
	start func(io.Reader) (voice, error)

	mu      sync.Mutex
	active  []voice
	started int
	closed  bool
}

// voice is one started playback. *eaudio.Player implements it.
type voice interface {
	IsPlaying() bool
	Close() error
}

var _ imageview.AudioPlayer = (*Player)(nil)

// NewPlayer creates the process audio context.
func NewPlayer(opts Options) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	ctx := eaudio.NewContext(opts.SampleRate)
	return newPlayer(opts, func(r io.Reader) (voice, error) {
		pl, err := ctx.NewPlayer(r)
		if err != nil {
			return nil, err
		}
		pl.SetVolume(opts.Volume)
		pl.Play()
		return pl, nil
	})
}

// newPlayer returns a Player that hands decoded streams to start.
func newPlayer(opts Options, start func(io.Reader) (voice, error)) *Player {
	return &Player{opts: opts, start: start}
}

// SampleRate returns the mixer sample rate.
func (p *Player) SampleRate() int { return p.opts.SampleRate }

// PlayDetached decodes h and starts it. The returned player is owned by p
// and released once it has finished.
func (p *Player) PlayDetached(h imageview.SoundHandle) error {
	s, ok := h.(*Sound)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignHandle, h)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	src, err := decode(s.format, p.opts.SampleRate, s.data)
	if err != nil {
		return fmt.Errorf("audio: decode %s: %w", s.name, err)
	}
	var r io.Reader = src
	if p.opts.Loop {
		r = eaudio.NewInfiniteLoop(src, src.Length())
	}
	pl, err := p.start(r)
	if err != nil {
		return fmt.Errorf("audio: new player for %s: %w", s.name, err)
	}

	p.prune()
	p.active = append(p.active, pl)
	p.started++
	imageview.Logger().Debug("audio: playing", "name", s.name, "format", s.format, "loop", p.opts.Loop)
	return nil
}

// Active returns the number of players still retained.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune()
	return len(p.active)
}

// Started returns the number of successful PlayDetached calls.
func (p *Player) Started() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Close stops and releases every player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	var errs []error
	for _, pl := range p.active {
		errs = append(errs, pl.Close())
	}
	p.active = nil
	return errors.Join(errs...)
}

// prune releases finished players. p.mu must be held.
func (p *Player) prune() {
	kept := p.active[:0]
	for _, pl := range p.active {
		if pl.IsPlaying() {
			kept = append(kept, pl)
			continue
		}
		if err := pl.Close(); err != nil {
			imageview.Logger().Warn("audio: close finished player", "err", err)
		}
	}
	clear(p.active[len(kept):])
	p.active = kept
}

// Silent is an AudioPlayer that only logs. It is used for --mute and
// headless runs.
type Silent struct {
	mu     sync.Mutex
	played []string
}

var _ imageview.AudioPlayer = (*Silent)(nil)

// PlayDetached records the sound's name.
func (s *Silent) PlayDetached(h imageview.SoundHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, h.Name())
	imageview.Logger().Info("audio: muted", "name", h.Name())
	return nil
}

// Played returns the names passed to PlayDetached.
func (s *Silent) Played() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.played...)
}
