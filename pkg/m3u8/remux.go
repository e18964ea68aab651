package m3u8

import (
	"context"
	"fmt"
	"os/exec"
)

// Remux stream-copies a mirrored playlist into a single output file using
// ffmpeg. Nothing is re-encoded.
func Remux(ctx context.Context, playlistPath, outputFile, ffmpegPath string) error {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	args := []string{
		"-y",
		"-allowed_extensions", "ALL",
		"-i", playlistPath,
		"-c", "copy",
		outputFile,
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(out))
	}

	return nil
}

func lastLine(out []byte) string {
	lines := splitLines(string(out))
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] != "" {
			return lines[i]
		}
	}
	return ""
}
