package m3u8

import (
	"net/url"
	"regexp"
	"strings"
)

// Tag prefixes the parser reacts to.
const (
	tagMap             = "#EXT-X-MAP:"
	tagStreamInf       = "#EXT-X-STREAM-INF:"
	tagMedia           = "#EXT-X-MEDIA:"
	tagIFrameStreamInf = "#EXT-X-I-FRAME-STREAM-INF:"
)

var uriAttr = regexp.MustCompile(`URI="([^"]+)"`)

// Playlist is a fetched M3U8 document together with the references found in
// it. A Playlist is not modified after Parse returns.
type Playlist struct {
	// Content is the document exactly as fetched.
	Content string
	// URL is where Content was fetched from and the base for every relative
	// reference in it.
	URL *url.URL
	// References lists segment, init-map and variant URIs in document order.
	// Duplicates are kept.
	References []string
}

// Parse extracts the references of a playlist. Bare lines (neither blank nor
// comments) are taken verbatim and #EXT-X-MAP tags contribute their URI
// attribute. Malformed tags are skipped, never reported.
func Parse(text string, origin *url.URL) *Playlist {
	p := &Playlist{Content: text, URL: origin}
	for _, line := range splitLines(text) {
		switch {
		case strings.HasPrefix(line, tagMap):
			if uri, ok := quotedURI(line); ok {
				p.References = append(p.References, uri)
			}
		case line != "" && !strings.HasPrefix(line, "#"):
			p.References = append(p.References, line)
		}
	}
	return p
}

// IsMaster reports whether text looks like a master playlist, that is whether
// it contains a stream-info, media or i-frame-stream tag anywhere. This is a
// plain substring test: a tag name inside a comment or attribute value counts.
func IsMaster(text string) bool {
	return strings.Contains(text, tagStreamInf) ||
		strings.Contains(text, tagMedia) ||
		strings.Contains(text, tagIFrameStreamInf)
}

// ExtractAllPlaylists returns the sub-playlist references of a master
// playlist in document order: the line right after each #EXT-X-STREAM-INF
// and the URI attribute of #EXT-X-MEDIA and #EXT-X-I-FRAME-STREAM-INF tags.
func ExtractAllPlaylists(text string) []string {
	var playlists []string
	lines := splitLines(text)
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, tagStreamInf):
			if i+1 >= len(lines) {
				continue
			}
			next := lines[i+1]
			if next != "" && !strings.HasPrefix(next, "#") {
				playlists = append(playlists, next)
			}
		case strings.HasPrefix(line, tagMedia), strings.HasPrefix(line, tagIFrameStreamInf):
			if uri, ok := quotedURI(line); ok {
				playlists = append(playlists, uri)
			}
		}
	}
	return playlists
}

func quotedURI(line string) (string, bool) {
	m := uriAttr.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// splitLines splits text on LF or CRLF and trims every line. A final line
// terminator does not produce an extra empty line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}
