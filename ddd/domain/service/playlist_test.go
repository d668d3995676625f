package service

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"videoflix-service/ddd/domain/vo"
)

func TestBuildMasterPlaylist(t *testing.T) {
	results := []vo.RenditionResult{
		vo.ResultFor(vo.RenditionSpec{Label: "360p", TargetWidth: 640, TargetHeight: 360, BitrateKbps: 800}),
		vo.ResultFor(vo.RenditionSpec{Label: "720p", TargetWidth: 1280, TargetHeight: 720, BitrateKbps: 2800}),
	}

	got := BuildMasterPlaylist(results)
	want := "#EXTM3U\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360\n360p.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=2800000,RESOLUTION=1280x720\n720p.m3u8\n"
	if got != want {
		t.Errorf("BuildMasterPlaylist() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildMasterPlaylistEmpty(t *testing.T) {
	if got := BuildMasterPlaylist(nil); got != "" {
		t.Errorf("empty input produced %q", got)
	}
}

func TestBuildMasterPlaylistPreservesOrder(t *testing.T) {
	results := []vo.RenditionResult{
		vo.ResultFor(vo.RenditionSpec{Label: "1080p", TargetWidth: 1920, TargetHeight: 1080, BitrateKbps: 5000}),
		vo.ResultFor(vo.RenditionSpec{Label: "360p", TargetWidth: 640, TargetHeight: 360, BitrateKbps: 800}),
	}
	got := BuildMasterPlaylist(results)
	if strings.Index(got, "1080p.m3u8") > strings.Index(got, "360p.m3u8") {
		t.Errorf("input order not preserved:\n%s", got)
	}
}

func TestWriteMasterPlaylistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	results := []vo.RenditionResult{
		vo.ResultFor(vo.RenditionSpec{Label: "480p", TargetWidth: 854, TargetHeight: 480, BitrateKbps: 1400}),
		vo.ResultFor(vo.RenditionSpec{Label: "1080p", TargetWidth: 1920, TargetHeight: 1080, BitrateKbps: 5000}),
	}

	path, err := WriteMasterPlaylist(dir, results)
	if err != nil {
		t.Fatalf("WriteMasterPlaylist: %v", err)
	}
	if filepath.Base(path) != MasterPlaylistName {
		t.Errorf("wrote %q, want %q", filepath.Base(path), MasterPlaylistName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	parsed, err := ParseMasterPlaylist(string(data))
	if err != nil {
		t.Fatalf("ParseMasterPlaylist: %v", err)
	}
	if !reflect.DeepEqual(parsed, results) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", parsed, results)
	}
}

func TestWriteMasterPlaylistEmptyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteMasterPlaylist(dir, nil)
	if err != nil {
		t.Fatalf("WriteMasterPlaylist: %v", err)
	}
	if path != "" {
		t.Errorf("empty results returned path %q", path)
	}
	if _, err := os.Stat(filepath.Join(dir, MasterPlaylistName)); !os.IsNotExist(err) {
		t.Error("master playlist file written for empty results")
	}
}

func TestParseMasterPlaylistRejectsOrphanVariant(t *testing.T) {
	if _, err := ParseMasterPlaylist("#EXTM3U\n720p.m3u8\n"); err == nil {
		t.Error("variant without stream-inf accepted")
	}
}
