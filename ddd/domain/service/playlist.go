package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"videoflix-service/ddd/domain/vo"
)

// MasterPlaylistName is the top-level manifest filename inside the hls dir.
const MasterPlaylistName = "master.m3u8"

// BuildMasterPlaylist serializes the successful tier results into master
// playlist text, preserving input order. Pure function; an empty input
// yields an empty string and the caller must not write a file for it.
func BuildMasterPlaylist(results []vo.RenditionResult) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, r := range results {
		fmt.Fprintf(&b, "#EXT-X-STREAM-INF:BANDWIDTH=%d,RESOLUTION=%dx%d\n", r.BandwidthBps, r.Width, r.Height)
		b.WriteString(r.VariantPlaylist)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteMasterPlaylist writes master.m3u8 into hlsDir and returns its path.
// With no results, nothing is written and the empty path tells the caller
// to leave the record untouched.
func WriteMasterPlaylist(hlsDir string, results []vo.RenditionResult) (string, error) {
	content := BuildMasterPlaylist(results)
	if content == "" {
		return "", nil
	}
	masterPath := filepath.Join(hlsDir, MasterPlaylistName)
	if err := os.WriteFile(masterPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write master playlist: %w", err)
	}
	return masterPath, nil
}

// ParseMasterPlaylist reads master playlist text back into ordered results.
// Used by the serving layer and to verify the writer round-trips.
func ParseMasterPlaylist(content string) ([]vo.RenditionResult, error) {
	var results []vo.RenditionResult
	var pending *vo.RenditionResult

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || line == "#EXTM3U":
			continue
		case strings.HasPrefix(line, "#EXT-X-STREAM-INF:"):
			entry, err := parseStreamInf(strings.TrimPrefix(line, "#EXT-X-STREAM-INF:"))
			if err != nil {
				return nil, err
			}
			pending = entry
		case strings.HasPrefix(line, "#"):
			continue
		default:
			if pending == nil {
				return nil, fmt.Errorf("variant %q without stream-inf line", line)
			}
			pending.VariantPlaylist = line
			pending.Label = strings.TrimSuffix(line, ".m3u8")
			results = append(results, *pending)
			pending = nil
		}
	}
	return results, nil
}

func parseStreamInf(attrs string) (*vo.RenditionResult, error) {
	entry := &vo.RenditionResult{}
	for _, attr := range strings.Split(attrs, ",") {
		key, value, ok := strings.Cut(attr, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "BANDWIDTH":
			bw, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("bad BANDWIDTH %q: %w", value, err)
			}
			entry.BandwidthBps = bw
		case "RESOLUTION":
			w, h, ok := strings.Cut(strings.TrimSpace(value), "x")
			if !ok {
				return nil, fmt.Errorf("bad RESOLUTION %q", value)
			}
			width, err := strconv.Atoi(w)
			if err != nil {
				return nil, fmt.Errorf("bad RESOLUTION width %q: %w", w, err)
			}
			height, err := strconv.Atoi(h)
			if err != nil {
				return nil, fmt.Errorf("bad RESOLUTION height %q: %w", h, err)
			}
			entry.Width, entry.Height = width, height
		}
	}
	return entry, nil
}
