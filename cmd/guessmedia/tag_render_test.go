package main

import (
	"io"
	"strings"
	"testing"
)

func TestRenderDataSourceNoColor(t *testing.T) {
	got := renderDataSource("MusicBrainz", []string{"guess_media_NOT_A_CD", "guess_media_ALBUM_ID_FROM_LOG_WRONG"}, false)
	want := "MusicBrainz+guess_media_NOT_A_CD+guess_media_ALBUM_ID_FROM_LOG_WRONG"
	if got != want {
		t.Fatalf("renderDataSource mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderTagWithColor(t *testing.T) {
	got := renderTag("guess_media_IS_A_CD", true)
	if !strings.HasPrefix(got, ansiYellow) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected yellow tag, got %q", got)
	}
}

func TestRenderVerdict(t *testing.T) {
	if got := renderVerdict("yes", true, false); got != "yes" {
		t.Fatalf("uncolored verdict = %q", got)
	}
	if got := renderVerdict("no", false, true); !strings.HasPrefix(got, ansiRed) {
		t.Fatalf("expected red verdict, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestListOrDash(t *testing.T) {
	if got := listOrDash(nil, ", "); got != "-" {
		t.Fatalf("empty list = %q", got)
	}
	if got := listOrDash([]string{"a", "b"}, ", "); got != "a, b" {
		t.Fatalf("list = %q", got)
	}
}
