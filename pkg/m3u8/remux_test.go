package m3u8

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemuxMissingBinary(t *testing.T) {
	dir := t.TempDir()
	err := Remux(context.Background(), filepath.Join(dir, "index.m3u8"), filepath.Join(dir, "out.mp4"), filepath.Join(dir, "no-ffmpeg"))
	assert.ErrorContains(t, err, "ffmpeg failed")
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "index.m3u8: No such file or directory", lastLine([]byte("ffmpeg version 6\nindex.m3u8: No such file or directory\n\n")))
	assert.Equal(t, "", lastLine(nil))
}
