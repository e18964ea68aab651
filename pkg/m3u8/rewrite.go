package m3u8

import (
	"strings"
)

// RewriteContent returns the playlist text with every absolute reference
// reduced to its local file name. URI attributes are rewritten first, then
// bare lines. Relative references and everything else pass through, so
// rewriting already rewritten text is a no-op. Lines are joined with LF.
func (p *Playlist) RewriteContent() string {
	content := uriAttr.ReplaceAllStringFunc(p.Content, func(match string) string {
		orig := uriAttr.FindStringSubmatch(match)[1]
		u, ok := parseAbsolute(orig)
		if !ok {
			return match
		}
		return `URI="` + LocalFilename(u, orig) + `"`
	})

	lines := splitLines(content)
	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if u, ok := parseAbsolute(line); ok {
			lines[i] = LocalFilename(u, line)
		}
	}

	out := strings.Join(lines, "\n")
	if strings.HasSuffix(p.Content, "\n") {
		out += "\n"
	}
	return out
}
