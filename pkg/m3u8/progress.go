package m3u8

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Progress receives download progress. Implementations are called from
// concurrent segment downloads and must be safe for concurrent use.
type Progress interface {
	PlaylistFetched(url string)
	BatchStarted(playlist string, segments int)
	SegmentDone(playlist, file string, bytes int64)
	BatchDone(playlist string, segments int)
}

// NopProgress discards all progress.
type NopProgress struct{}

func (NopProgress) PlaylistFetched(string) {}
func (NopProgress) BatchStarted(string, int) {}
func (NopProgress) SegmentDone(string, string, int64) {}
func (NopProgress) BatchDone(string, int) {}

// LogProgress reports progress through a zerolog logger and keeps running
// totals.
type LogProgress struct {
	log      zerolog.Logger
	segments atomic.Int64
	bytes    atomic.Int64
}

// NewLogProgress returns a LogProgress writing to the "progress" component logger.
func NewLogProgress() *LogProgress {
	return &LogProgress{log: WithComponent("progress")}
}

func (p *LogProgress) PlaylistFetched(url string) {
	p.log.Info().Str("url", url).Msg("fetched playlist")
}

func (p *LogProgress) BatchStarted(playlist string, segments int) {
	p.log.Info().Str("playlist", playlist).Int("segments", segments).Msg("downloading segments")
}

func (p *LogProgress) SegmentDone(playlist, file string, bytes int64) {
	done := p.segments.Add(1)
	p.bytes.Add(bytes)
	p.log.Debug().
		Str("playlist", playlist).
		Str("file", file).
		Int64("bytes", bytes).
		Int64("done", done).
		Msg("segment saved")
}

func (p *LogProgress) BatchDone(playlist string, segments int) {
	p.log.Info().Str("playlist", playlist).Int("segments", segments).Msg("downloaded segments")
}

// Totals returns the number of segments and bytes saved so far.
func (p *LogProgress) Totals() (segments, bytes int64) {
	return p.segments.Load(), p.bytes.Load()
}
