package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"testing"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeWAV returns a 16-bit stereo PCM WAV file with frames silent frames.
func makeWAV(t *testing.T, sampleRate, frames int) []byte {
	t.Helper()
	const channels, bits = 2, 16
	dataSize := frames * channels * bits / 8

	var buf bytes.Buffer
	w := func(v any) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }
	buf.WriteString("RIFF")
	w(uint32(36 + dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(16))
	w(uint16(1)) // PCM
	w(uint16(channels))
	w(uint32(sampleRate))
	w(uint32(sampleRate * channels * bits / 8))
	w(uint16(channels * bits / 8))
	w(uint16(bits))
	buf.WriteString("data")
	w(uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	wavData := makeWAV(t, DefaultSampleRate, 1)
	tests := []struct {
		name string
		file string
		data []byte
		want Format
	}{
		{"ogg magic", "x.bin", []byte("OggS\x00\x02"), FormatVorbis},
		{"wav magic", "x.bin", wavData, FormatWAV},
		{"id3 tag", "x.bin", []byte("ID3\x04"), FormatMP3},
		{"mpeg frame sync", "x.bin", []byte{0xFF, 0xFB, 0x90}, FormatMP3},
		{"ogg extension", "/sound.OGG", []byte("????"), FormatVorbis},
		{"wav extension", "/a/b.wav", nil, FormatWAV},
		{"mp3 extension", "/c.mp3", nil, FormatMP3},
		{"riff but not wave", "x.mp3", []byte("RIFF\x00\x00\x00\x00AVI "), FormatMP3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.file, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Unknown(t *testing.T) {
	_, err := DetectFormat("/readme.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewSound_WAV(t *testing.T) {
	data := makeWAV(t, DefaultSampleRate, 100)
	s, err := NewSound("/beep.wav", data, DefaultSampleRate)
	require.NoError(t, err)
	assert.Equal(t, "/beep.wav", s.Name())
	assert.Equal(t, FormatWAV, s.Format())
	assert.Equal(t, int64(400), s.Length())
}

func TestNewSound_Corrupt(t *testing.T) {
	_, err := NewSound("/sound.ogg", []byte("OggS but not really a vorbis stream"), DefaultSampleRate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/sound.ogg")

	_, err = NewSound("/notes.txt", []byte("plain text"), DefaultSampleRate)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := decode(Format("flac"), DefaultSampleRate, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSilent(t *testing.T) {
	s := &Silent{}
	data := makeWAV(t, DefaultSampleRate, 1)
	snd, err := NewSound("/a.wav", data, DefaultSampleRate)
	require.NoError(t, err)

	require.NoError(t, s.PlayDetached(snd))
	require.NoError(t, s.PlayDetached(snd))
	assert.Equal(t, []string{"/a.wav", "/a.wav"}, s.Played())
}

type fakeVoice struct {
	playing bool
	closed  bool
}

func (v *fakeVoice) IsPlaying() bool { return v.playing && !v.closed }

func (v *fakeVoice) Close() error {
	v.closed = true
	return nil
}

// fakeStarter records every stream handed to the mixer.
type fakeStarter struct {
	voices  []*fakeVoice
	readers []io.Reader
	err     error
}

func (f *fakeStarter) start(r io.Reader) (voice, error) {
	if f.err != nil {
		return nil, f.err
	}
	v := &fakeVoice{playing: true}
	f.voices = append(f.voices, v)
	f.readers = append(f.readers, r)
	return v, nil
}

func TestPlayer_RetainsUntilFinished(t *testing.T) {
	starter := &fakeStarter{}
	p := newPlayer(Options{SampleRate: DefaultSampleRate, Volume: 1}, starter.start)
	snd, err := NewSound("/a.wav", makeWAV(t, DefaultSampleRate, 100), DefaultSampleRate)
	require.NoError(t, err)

	require.NoError(t, p.PlayDetached(snd))
	require.NoError(t, p.PlayDetached(snd))
	assert.Equal(t, 2, p.Active())
	assert.Equal(t, 2, p.Started())

	starter.voices[0].playing = false
	assert.Equal(t, 1, p.Active(), "finished players are released")
	assert.True(t, starter.voices[0].closed)
	assert.False(t, starter.voices[1].closed)

	require.NoError(t, p.Close())
	assert.True(t, starter.voices[1].closed)
	assert.Equal(t, 0, p.Active())

	assert.ErrorIs(t, p.PlayDetached(snd), ErrClosed)
	assert.Equal(t, 2, p.Started())
}

func TestPlayer_Loop(t *testing.T) {
	starter := &fakeStarter{}
	p := newPlayer(Options{SampleRate: DefaultSampleRate, Loop: true}, starter.start)
	snd, err := NewSound("/a.wav", makeWAV(t, DefaultSampleRate, 10), DefaultSampleRate)
	require.NoError(t, err)

	require.NoError(t, p.PlayDetached(snd))
	require.Len(t, starter.readers, 1)
	assert.IsType(t, &eaudio.InfiniteLoop{}, starter.readers[0])
}

func TestPlayer_Errors(t *testing.T) {
	boom := errors.New("device busy")
	p := newPlayer(Options{SampleRate: DefaultSampleRate}, (&fakeStarter{err: boom}).start)
	snd, err := NewSound("/a.wav", makeWAV(t, DefaultSampleRate, 10), DefaultSampleRate)
	require.NoError(t, err)

	err = p.PlayDetached(snd)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "/a.wav")
	assert.Equal(t, 0, p.Active())

	assert.ErrorIs(t, p.PlayDetached(namedSound("/other")), ErrForeignHandle)
}

type namedSound string

func (s namedSound) Name() string { return string(s) }

// TestPlayer_Device plays through the real mixer. It needs a sound card,
// so it only runs when IMAGEVIEW_AUDIO_DEVICE is set.
func TestPlayer_Device(t *testing.T) {
	if os.Getenv("IMAGEVIEW_AUDIO_DEVICE") == "" {
		t.Skip("IMAGEVIEW_AUDIO_DEVICE not set; skipping audio device test")
	}
	p := NewPlayer(Options{Volume: 0})
	snd, err := NewSound("/a.wav", makeWAV(t, DefaultSampleRate, DefaultSampleRate/10), DefaultSampleRate)
	require.NoError(t, err)

	require.NoError(t, p.PlayDetached(snd))
	assert.Equal(t, 1, p.Started())
	require.NoError(t, p.Close())
	assert.ErrorIs(t, p.PlayDetached(snd), ErrClosed)
}
