// Package m3u8 mirrors HLS playlists and their segments into a local
// directory. It parses M3U8 text for segment and sub-playlist references,
// downloads segments concurrently and rewrites playlists so every reference
// points at a flat local file name.
package m3u8
