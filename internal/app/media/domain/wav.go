package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
)

const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16
)

// WAV wraps little-endian PCM samples into a RIFF/WAVE container.
func WAV(pcm []byte, sampleRate, channels, bitsPerSample int) []byte {
	blockAlign := channels * bitsPerSample / 8
	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// AudioDataURL returns the speech PCM as a data:audio/wav;base64 URL.
func AudioDataURL(pcm []byte) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(WAV(pcm, SampleRate, Channels, BitsPerSample))
}
