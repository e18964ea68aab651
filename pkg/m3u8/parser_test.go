package m3u8

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}

func TestParse(t *testing.T) {
	origin := "https://example.com/a/low.m3u8"

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "segments in document order",
			text: "#EXTM3U\n#EXTINF:4,\nseg0.ts\n#EXTINF:4,\nseg1.ts\n#EXT-X-ENDLIST\n",
			want: []string{"seg0.ts", "seg1.ts"},
		},
		{
			name: "init map contributes its uri",
			text: "#EXTM3U\n#EXT-X-MAP:URI=\"init.mp4\",BYTERANGE=\"720@0\"\n#EXTINF:4,\nseg0.m4s\n",
			want: []string{"init.mp4", "seg0.m4s"},
		},
		{
			name: "map without uri is skipped",
			text: "#EXTM3U\n#EXT-X-MAP:BYTERANGE=\"720@0\"\n#EXTINF:4,\nseg0.m4s\n",
			want: []string{"seg0.m4s"},
		},
		{
			name: "duplicates are kept",
			text: "#EXTINF:4,\nseg0.ts\n#EXTINF:4,\nseg0.ts\n",
			want: []string{"seg0.ts", "seg0.ts"},
		},
		{
			name: "crlf and surrounding whitespace",
			text: "#EXTM3U\r\n#EXTINF:4,\r\n  seg0.ts  \r\n\r\nhttps://cdn.example.com/v/seg1.ts\r\n",
			want: []string{"seg0.ts", "https://cdn.example.com/v/seg1.ts"},
		},
		{
			name: "key uris are not references",
			text: "#EXT-X-KEY:METHOD=AES-128,URI=\"k.key\"\n#EXTINF:4,\nseg0.ts\n",
			want: []string{"seg0.ts"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Parse(tc.text, mustURL(t, origin))
			if diff := cmp.Diff(tc.want, p.References); diff != "" {
				t.Fatalf("references mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.text, p.Content)
			assert.Equal(t, origin, p.URL.String())
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	text := "#EXTM3U\n#EXT-X-MAP:URI=\"init.mp4\"\n#EXTINF:4,\na.m4s\n#EXTINF:4,\nb.m4s\n"
	base := mustURL(t, "https://example.com/x.m3u8")

	first := Parse(text, base).References
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Parse(text, base).References)
	}
}

func TestIsMaster(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"stream inf", "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=800000\nlow.m3u8\n", true},
		{"media", "#EXTM3U\n#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"a\",NAME=\"en\"\n", true},
		{"iframe", "#EXTM3U\n#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=1,URI=\"if.m3u8\"\n", true},
		{"media playlist", "#EXTM3U\n#EXT-X-TARGETDURATION:4\n#EXTINF:4,\nseg0.ts\n", false},
		{"media sequence is not a media tag", "#EXTM3U\n#EXT-X-MEDIA-SEQUENCE:7\n#EXTINF:4,\nseg7.ts\n", false},
		{"tag name inside a comment counts", "#EXTM3U\n# copied from #EXT-X-STREAM-INF:BANDWIDTH=1\nseg0.ts\n", true},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMaster(tc.text))
		})
	}
}

func TestExtractAllPlaylists(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stream inf pairs with next line",
			text: "#EXT-X-STREAM-INF:BANDWIDTH=1\nvariant.m3u8\n",
			want: []string{"variant.m3u8"},
		},
		{
			name: "stream inf at eof",
			text: "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1\n",
			want: nil,
		},
		{
			name: "stream inf followed by tag",
			text: "#EXT-X-STREAM-INF:BANDWIDTH=1\n#EXT-X-STREAM-INF:BANDWIDTH=2\nhi.m3u8\n",
			want: []string{"hi.m3u8"},
		},
		{
			name: "stream inf followed by blank line",
			text: "#EXT-X-STREAM-INF:BANDWIDTH=1\n\nlow.m3u8\n",
			want: nil,
		},
		{
			name: "document order across tag kinds",
			text: "#EXTM3U\n" +
				"#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"aud\",NAME=\"en\",URI=\"audio/en.m3u8\"\n" +
				"#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"aud\",NAME=\"muxed\"\n" +
				"#EXT-X-STREAM-INF:BANDWIDTH=800000,AUDIO=\"aud\"\n" +
				"low/index.m3u8\n" +
				"#EXT-X-I-FRAME-STREAM-INF:BANDWIDTH=90000,URI=\"https://cdn.example.com/if.m3u8\"\n" +
				"#EXT-X-STREAM-INF:BANDWIDTH=2400000\r\n" +
				"hi/index.m3u8\r\n",
			want: []string{
				"audio/en.m3u8",
				"low/index.m3u8",
				"https://cdn.example.com/if.m3u8",
				"hi/index.m3u8",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractAllPlaylists(tc.text)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("playlists mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
