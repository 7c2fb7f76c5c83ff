// Package audioconv turns audio files into the mono 16 kHz float32 PCM that
// whisper expects, and writes captured PCM back out as WAV.
package audioconv

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

const SampleRate = 16000

var ErrUnsupported = errors.New("audioconv: unsupported format")

type decoder func(r io.ReadSeeker) ([]float32, error)

var byExt = map[string]decoder{
	".wav":  decodeWAV,
	".mp3":  decodeMP3,
	".ogg":  decodeOgg,
	".oga":  decodeOgg,
	".opus": decodeOgg,
}

var byMagic = map[string]decoder{
	"RIFF":    decodeWAV,
	"OggS":    decodeOgg,
	"ID3\x03": decodeMP3,
	"ID3\x04": decodeMP3,
}

// DecodeFile picks a decoder by extension, then by magic bytes.
func DecodeFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if dec, ok := byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return dec(f)
	}

	magic, _ := bufio.NewReader(f).Peek(4)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if dec, ok := byMagic[string(magic)]; ok {
		return dec(f)
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

func decodeWAV(r io.ReadSeeker) ([]float32, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, errors.New("empty wav")
	}

	depth := int(dec.BitDepth)
	if depth == 0 {
		depth = 16
	}
	scale := 1.0 / float64(int64(1)<<(depth-1))

	pcm := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		pcm[i] = float32(math.Max(-1, math.Min(1, float64(v)*scale)))
	}

	channels, rate := 1, SampleRate
	if buf.Format != nil {
		channels = max(buf.Format.NumChannels, 1)
		if buf.Format.SampleRate > 0 {
			rate = buf.Format.SampleRate
		}
	}
	return Resample(Downmix(pcm, channels), rate, SampleRate), nil
}

func decodeMP3(r io.ReadSeeker) ([]float32, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}

	var raw bytes.Buffer
	if _, err := io.Copy(&raw, dec); err != nil {
		return nil, fmt.Errorf("read mp3: %w", err)
	}

	samples := make([]int16, raw.Len()/2)
	if err := binary.Read(&raw, binary.LittleEndian, samples); err != nil {
		return nil, err
	}

	pcm := make([]float32, len(samples))
	for i, v := range samples {
		pcm[i] = float32(v) / 32768
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		rate = 44100
	}
	// The decoder always emits interleaved stereo.
	return Resample(Downmix(pcm, 2), rate, SampleRate), nil
}

// oggCodecs are tried in order on an Ogg container.
var oggCodecs = []decoder{decodeVorbis, decodeOpus}

func decodeOgg(r io.ReadSeeker) ([]float32, error) {
	var errs []error
	for _, dec := range oggCodecs {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		pcm, err := dec(r)
		if err == nil {
			return pcm, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("decode ogg: %w", errors.Join(errs...))
}

func decodeVorbis(r io.ReadSeeker) ([]float32, error) {
	pcm, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read vorbis: %w", err)
	}
	if format == nil || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, errors.New("invalid ogg/vorbis stream")
	}
	return Resample(Downmix(pcm, format.Channels), format.SampleRate, SampleRate), nil
}

// opusRate is the rate libopus always decodes at.
const opusRate = 48000

func decodeOpus(r io.ReadSeeker) ([]float32, error) {
	dec, err := popus.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open opus: %w", err)
	}
	defer dec.Destroy()

	channels := max(dec.ChannelCount(), 1)

	var pcm []float32
	buf := make([]int16, opusRate*channels/2)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n*channels] {
			pcm = append(pcm, float32(v)/32768)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read opus: %w", err)
		}
	}
	if len(pcm) == 0 {
		return nil, errors.New("empty opus stream")
	}
	return Resample(Downmix(pcm, channels), opusRate, SampleRate), nil
}

// WriteWAV stores mono 16 kHz PCM as 16-bit WAV.
func WriteWAV(path string, pcm []float32) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)

	data := make([]int, len(pcm))
	for i, v := range pcm {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, float64(v))) * 32767))
	}

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	})
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Downmix averages interleaved channels into mono.
func Downmix(in []float32, channels int) []float32 {
	if channels <= 1 {
		return in
	}
	out := make([]float32, len(in)/channels)
	for i := range out {
		var sum float32
		for _, v := range in[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum / float32(channels)
	}
	return out
}

// Resample converts between rates by linear interpolation.
func Resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}

	ratio := float64(to) / float64(from)
	out := make([]float32, int(math.Ceil(float64(len(in))*ratio)))
	last := len(in) - 1

	for i := range out {
		pos := float64(i) / ratio
		j := int(pos)
		if j >= last {
			out[i] = in[last]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}
