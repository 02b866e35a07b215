package domain

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "uploads/1700000000123-my_summer__photo.png", ObjectName("my summer  photo.png", now))
	assert.Equal(t, "uploads/1700000000123-a_b_c.jpg", ObjectName("a b\tc.jpg", now))
}

func TestThumbnailName(t *testing.T) {
	assert.Equal(t, "uploads/1-cat_thumb.jpg", ThumbnailName("uploads/1-cat.png"))
	assert.Equal(t, "uploads/1-noext_thumb.jpg", ThumbnailName("uploads/1-noext"))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage("IMAGE/JPEG"))
	assert.False(t, IsImage("video/mp4"))
	assert.False(t, IsImage(""))
}

func TestWAVHeader(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	w := WAV(pcm, SampleRate, Channels, BitsPerSample)

	require.Len(t, w, 48)
	assert.Equal(t, "RIFF", string(w[0:4]))
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(w[4:8]))
	assert.Equal(t, "WAVE", string(w[8:12]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(w[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(w[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(w[28:32]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(w[34:36]))
	assert.Equal(t, "data", string(w[36:40]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(w[40:44]))
	assert.Equal(t, pcm, w[44:])
}

func TestAudioDataURL(t *testing.T) {
	url := AudioDataURL([]byte{0, 0})
	require.True(t, strings.HasPrefix(url, "data:audio/wav;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:audio/wav;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(raw[:4]))
}
