package m3u8

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// HTTPDoer is the part of *http.Client the downloader needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Segment is a resolved reference: where to fetch it and the flat file name
// it is saved under.
type Segment struct {
	URL      string
	Filename string
}

// Downloader fetches playlists and segments over HTTP.
type Downloader struct {
	client   HTTPDoer
	progress Progress
	metrics  *Metrics
	log      zerolog.Logger
}

// NewDownloader creates a downloader. A nil progress discards progress and a
// nil metrics disables counting.
func NewDownloader(client HTTPDoer, progress Progress, metrics *Metrics) *Downloader {
	if progress == nil {
		progress = NopProgress{}
	}
	return &Downloader{
		client:   client,
		progress: progress,
		metrics:  metrics,
		log:      WithComponent("downloader"),
	}
}

// get issues a GET and returns the response if its status is 2xx. The caller
// closes the body.
func (d *Downloader) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newError(ErrInvalidURL, "create request for", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, newError(ErrNetwork, "fetch", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errorf(ErrDownload, "fetch", url, "unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}

// FetchText downloads a playlist and returns its body.
func (d *Downloader) FetchText(ctx context.Context, url string) (string, error) {
	d.log.Debug().Str("url", url).Msg("fetching playlist")

	resp, err := d.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(ErrNetwork, "read playlist", url, err)
	}

	d.metrics.playlistFetched()
	d.progress.PlaylistFetched(url)
	return string(data), nil
}

// DownloadSegment streams one segment into dir and returns its size.
func (d *Downloader) DownloadSegment(ctx context.Context, segment Segment, dir string) (int64, error) {
	outPath, err := localPath(dir, segment.Filename)
	if err != nil {
		return 0, err
	}

	resp, err := d.get(ctx, segment.URL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := writeStream(outPath, resp.Body)
	if err != nil {
		return n, fmt.Errorf("segment %s: %w", segment.URL, err)
	}

	d.metrics.segmentSaved(n)
	return n, nil
}

// DownloadBatch downloads segments concurrently, at most concurrency at a
// time (zero means all at once). The first failure cancels the remaining
// downloads and is returned. Segments finished before the failure stay on disk.
func (d *Downloader) DownloadBatch(ctx context.Context, playlist string, segments []Segment, dir string, concurrency int) error {
	if len(segments) == 0 {
		return nil
	}

	d.progress.BatchStarted(playlist, len(segments))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for _, segment := range segments {
		segment := segment // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		g.Go(func() error {
			n, err := d.DownloadSegment(ctx, segment, dir)
			if err != nil {
				return err
			}
			d.progress.SegmentDone(playlist, segment.Filename, n)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	d.progress.BatchDone(playlist, len(segments))
	return nil
}
