package m3u8

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
)

const defaultPlaylistName = "playlist.m3u8"

// Copier mirrors an HLS rendition set into a local directory.
type Copier struct {
	downloader  *Downloader
	concurrency int
	metrics     *Metrics
	log         zerolog.Logger
}

// NewCopier creates a Copier from opts.
func NewCopier(opts Options) (*Copier, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client = newClient(opts)
	}
	progress := opts.Progress
	if progress == nil {
		progress = NewLogProgress()
	}

	return &Copier{
		downloader:  NewDownloader(client, progress, opts.Metrics),
		concurrency: opts.Concurrency,
		metrics:     opts.Metrics,
		log:         WithComponent("copier"),
	}, nil
}

// CopyRendition mirrors the playlist at sourceURL into destDir. A master
// playlist is followed into each of its sub-playlists, one at a time. Every
// playlist is saved with its references reduced to local file names, next to
// the segments it lists. The first failure aborts the run; files written
// before it are left in place.
func (c *Copier) CopyRendition(ctx context.Context, sourceURL, destDir string) error {
	err := c.copyRendition(ctx, sourceURL, destDir)
	if err != nil {
		c.metrics.failed(err)
	}
	return err
}

func (c *Copier) copyRendition(ctx context.Context, sourceURL, destDir string) error {
	if err := createDirAll(destDir); err != nil {
		return err
	}

	source, err := parseSource(sourceURL)
	if err != nil {
		return err
	}

	log := c.log.With().Str("url", source.String()).Str("dest", destDir).Logger()
	log.Info().Msg("mirroring rendition")

	masterName := LocalFilename(source, defaultPlaylistName)
	masterPath, err := localPath(destDir, masterName)
	if err != nil {
		return err
	}

	masterText, err := c.downloader.FetchText(ctx, source.String())
	if err != nil {
		return err
	}
	if err := writeFile(masterPath, []byte(masterText)); err != nil {
		return err
	}

	if !IsMaster(masterText) {
		return c.processMediaPlaylist(ctx, Parse(masterText, source), masterName, destDir)
	}

	refs := ExtractAllPlaylists(masterText)
	log.Info().Int("playlists", len(refs)).Msg("master playlist")

	written := make(map[string]bool, len(refs))
	for _, ref := range refs {
		u, err := Resolve(ref, source)
		if err != nil {
			return err
		}
		name := LocalFilename(u, ref)
		if err := c.fetchMediaPlaylist(ctx, u, name, destDir); err != nil {
			return err
		}
		written[name] = true
	}

	// A sub-playlist saved under the master's name stays the last writer.
	if written[masterName] {
		log.Warn().Str("file", masterName).Msg("sub-playlist shares the master file name, keeping sub-playlist")
	} else {
		master := Parse(masterText, source)
		if err := writeFile(masterPath, []byte(master.RewriteContent())); err != nil {
			return err
		}
	}

	log.Info().Msg("rendition mirrored")
	return nil
}

func (c *Copier) fetchMediaPlaylist(ctx context.Context, u *url.URL, name, destDir string) error {
	text, err := c.downloader.FetchText(ctx, u.String())
	if err != nil {
		return err
	}
	return c.processMediaPlaylist(ctx, Parse(text, u), name, destDir)
}

// processMediaPlaylist downloads every reference of p and then writes the
// rewritten playlist as destDir/name.
func (c *Copier) processMediaPlaylist(ctx context.Context, p *Playlist, name, destDir string) error {
	path, err := localPath(destDir, name)
	if err != nil {
		return err
	}

	segments := make([]Segment, 0, len(p.References))
	for _, ref := range p.References {
		u, err := Resolve(ref, p.URL)
		if err != nil {
			return err
		}
		segments = append(segments, Segment{URL: u.String(), Filename: LocalFilename(u, ref)})
	}

	if err := c.downloader.DownloadBatch(ctx, name, segments, destDir, c.concurrency); err != nil {
		return err
	}

	c.log.Debug().Str("playlist", name).Int("segments", len(segments)).Msg("writing playlist")
	return writeFile(path, []byte(p.RewriteContent()))
}

func parseSource(sourceURL string) (*url.URL, error) {
	source, ok := parseAbsolute(sourceURL)
	if !ok || source.Host == "" {
		return nil, errorf(ErrInvalidURL, "parse", sourceURL, "source must be an absolute URL")
	}
	return source, nil
}

// PlaylistFilename returns the name CopyRendition saves the top-level
// playlist of sourceURL under.
func PlaylistFilename(sourceURL string) (string, error) {
	source, err := parseSource(sourceURL)
	if err != nil {
		return "", err
	}
	return LocalFilename(source, defaultPlaylistName), nil
}
