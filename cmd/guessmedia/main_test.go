package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
)

const eacLog = "Exact Audio Copy V1.6 from 23. October 2020\r\n" +
	"\r\n" +
	"TOC of the extracted CD\r\n" +
	"\r\n" +
	"     Track |   Start  |  Length  | Start sector | End sector \r\n" +
	"    ---------------------------------------------------------\r\n" +
	"        1  |  0:00.00 |  0:04.00 |         0    |      299   \r\n" +
	"        2  |  0:04.00 |  0:04.00 |       300    |      599   \r\n" +
	"        3  |  0:08.00 |  0:05.26 |       600    |     1000   \r\n" +
	"\r\n"

const probeTemplate = `{
  "streams": [{"index": 0, "codec_name": "flac", "codec_type": "audio",
    "sample_rate": "%d", "bits_per_raw_sample": "%d", "channels": 2}],
  "format": {"format_name": "flac", "duration": "13.0"}
}`

type cliEnv struct {
	configPath string
	albumDir   string
	items      []string
	lookups    atomic.Int64
}

func newMusicBrainzServer(t *testing.T, env *cliEnv) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/discid/-":
			env.lookups.Add(1)
			if r.URL.Query().Get("toc") != "1 3 1151 150 450 750" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, `{"release-count":2,"releases":[{"id":"rel-2"},{"id":"rel-1"}]}`)
		case "/release/rel-1":
			fmt.Fprint(w, `{"id":"rel-1","title":"Short Album","date":"2001-05-01","country":"GB",
				"artist-credit":[{"name":"Some Band","joinphrase":""}],
				"media":[{"position":1,"format":"CD","track-count":3}]}`)
		case "/release/rel-2":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupCLIEnv creates an album folder with a ripper log, a fake MusicBrainz
// server, a stub ffprobe reporting bits/rate for every file, and a config
// wiring them together.
func setupCLIEnv(t *testing.T, bits, rate int, backend string) *cliEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub ffprobe requires a POSIX shell")
	}
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("GUESSMEDIA_MUSICBRAINZ_URL", "")

	env := &cliEnv{albumDir: filepath.Join(base, "Artist", "Album")}
	if err := os.MkdirAll(env.albumDir, 0o755); err != nil {
		t.Fatalf("mkdir album: %v", err)
	}
	if err := os.WriteFile(filepath.Join(env.albumDir, "Album.log"), []byte(eacLog), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	for _, name := range []string{"01.flac", "02.flac", "03.flac"} {
		path := filepath.Join(env.albumDir, name)
		if err := os.WriteFile(path, []byte("fLaC"), 0o644); err != nil {
			t.Fatalf("write item: %v", err)
		}
		env.items = append(env.items, path)
	}

	probeJSON := filepath.Join(base, "probe.json")
	if err := os.WriteFile(probeJSON, []byte(fmt.Sprintf(probeTemplate, rate, bits)), 0o644); err != nil {
		t.Fatalf("write probe output: %v", err)
	}
	ffprobe := filepath.Join(base, "ffprobe")
	if err := os.WriteFile(ffprobe, []byte("#!/bin/sh\ncat '"+probeJSON+"'\n"), 0o755); err != nil {
		t.Fatalf("write ffprobe stub: %v", err)
	}

	srv := newMusicBrainzServer(t, env)
	env.configPath = filepath.Join(base, "guessmedia.toml")
	config := fmt.Sprintf(`[weights]
media_weight = 1.0
album_id_weight = 0.5

[musicbrainz]
base_url = %q
user_agent = "guessmedia-test/1.0"
requests_per_second = 1000.0

[evidence]
backend = %q

[probe]
ffprobe_binary = %q

[logging]
level = "error"
`, srv.URL, backend, ffprobe)
	if err := os.WriteFile(env.configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

func TestTOCCommand(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")
	notes := filepath.Join(env.albumDir, "notes.txt")
	if err := os.WriteFile(notes, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"toc", filepath.Join(env.albumDir, "Album.log"), notes}, env.configPath)
	if err != nil {
		t.Fatalf("toc: %v", err)
	}
	requireContains(t, out, "1 3 1151 150 450 750")
	requireContains(t, out, "eac")
	requireContains(t, out, "not an EAC or XLD log")
	if got := env.lookups.Load(); got != 0 {
		t.Fatalf("toc without --lookup queried MusicBrainz %d times", got)
	}
}

func TestTOCCommandLookupJSON(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")

	out, _, err := runCLI(t, []string{"--json", "toc", "--lookup", filepath.Join(env.albumDir, "Album.log")}, env.configPath)
	if err != nil {
		t.Fatalf("toc --lookup: %v", err)
	}
	var reports []tocReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %+v", reports)
	}
	got := reports[0]
	if got.Tool != "eac" || got.TrackCount != 3 || got.TOC != "1 3 1151 150 450 750" {
		t.Fatalf("report = %+v", got)
	}
	if !slices.Equal(got.ReleaseIDs, []string{"rel-2", "rel-1"}) {
		t.Fatalf("release ids = %v", got.ReleaseIDs)
	}
}

func TestScanCommandJSON(t *testing.T) {
	for _, backend := range []string{"memory", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			env := setupCLIEnv(t, 16, 44100, backend)
			empty := t.TempDir()

			out, _, err := runCLI(t, []string{"scan", "--json", env.albumDir, empty, env.albumDir}, env.configPath)
			if err != nil {
				t.Fatalf("scan: %v", err)
			}
			var reports []scanReport
			if err := json.Unmarshal([]byte(out), &reports); err != nil {
				t.Fatalf("decode output: %v\n%s", err, out)
			}
			if len(reports) != 3 {
				t.Fatalf("reports = %+v", reports)
			}
			if !reports[0].HasValidLog || !slices.Equal(reports[0].ReleaseIDs, []string{"rel-1", "rel-2"}) {
				t.Fatalf("album report = %+v", reports[0])
			}
			if reports[1].HasValidLog || len(reports[1].ReleaseIDs) != 0 {
				t.Fatalf("empty dir report = %+v", reports[1])
			}
			if got := env.lookups.Load(); got != 1 {
				t.Fatalf("lookups = %d, want 1", got)
			}
		})
	}
}

func TestScanCommandTable(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")

	out, _, err := runCLI(t, []string{"scan", env.albumDir}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "Directory")
	requireContains(t, out, "yes")
	requireContains(t, out, "rel-1")
}

func TestCandidatesCommand(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")

	out, _, err := runCLI(t, append([]string{"candidates", "--json"}, env.items...), env.configPath)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	var reports []candidateReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(reports) != 1 {
		t.Fatalf("expected only the fetchable release, got %+v", reports)
	}
	got := reports[0]
	if got.ReleaseID != "rel-1" || got.Artist != "Some Band" || got.Medium != "CD" || got.Discs != 1 {
		t.Fatalf("candidate = %+v", got)
	}
}

func TestCandidatesCommandWithoutLogs(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")
	item := filepath.Join(t.TempDir(), "01.flac")

	out, _, err := runCLI(t, []string{"candidates", item}, env.configPath)
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	requireContains(t, out, "No candidates")
}

func TestScoreCommand(t *testing.T) {
	tests := []struct {
		name      string
		bits      int
		rate      int
		medium    string
		releaseID string
		media     float64
		albumID   float64
		tags      []string
	}{
		{"hi-res against CD", 24, 96000, "CD", "rel-1", 1, 0, []string{"guess_media_NOT_A_CD"}},
		{"CD rip against digital", 16, 44100, "Digital Media", "rel-1", 1, 0, []string{"guess_media_IS_A_CD"}},
		{"wrong release", 16, 44100, "CD", "rel-9", 0, 0.5, []string{"guess_media_ALBUM_ID_FROM_LOG_WRONG"}},
		{"clean match", 16, 44100, "CD", "rel-2", 0, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupCLIEnv(t, tt.bits, tt.rate, "memory")
			args := append([]string{"score", "--json", "--medium", tt.medium, "--release-id", tt.releaseID}, env.items...)
			out, _, err := runCLI(t, args, env.configPath)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			var report scoreReport
			if err := json.Unmarshal([]byte(out), &report); err != nil {
				t.Fatalf("decode output: %v\n%s", err, out)
			}
			if report.Penalties["media"] != tt.media || report.Penalties["album_id"] != tt.albumID {
				t.Fatalf("penalties = %v", report.Penalties)
			}
			if !slices.Equal(report.Tags, tt.tags) {
				t.Fatalf("tags = %v, want %v", report.Tags, tt.tags)
			}
			if len(report.Items) != 3 || report.Items[0].BitDepth != tt.bits || report.Items[0].SampleRate != tt.rate {
				t.Fatalf("items = %+v", report.Items)
			}
			wantSource := "MusicBrainz"
			for _, tag := range tt.tags {
				wantSource += "+" + tag
			}
			if report.Candidate.DataSource != wantSource {
				t.Fatalf("data source = %q, want %q", report.Candidate.DataSource, wantSource)
			}
		})
	}
}

func TestScoreCommandTable(t *testing.T) {
	env := setupCLIEnv(t, 24, 44100, "memory")

	out, _, err := runCLI(t, append([]string{"score", "--medium", "CD", "--release-id", "rel-1"}, env.items...), env.configPath)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	requireContains(t, out, "media")
	requireContains(t, out, "1.00")
	requireContains(t, out, "Source: MusicBrainz+guess_media_NOT_A_CD")
}

func TestScoreCommandRequiresReleaseID(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")
	if _, _, err := runCLI(t, append([]string{"score", "--medium", "CD"}, env.items...), env.configPath); err == nil {
		t.Fatal("expected error without --release-id")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "album_id_weight = 0.5")
	requireContains(t, out, "guessmedia-test/1.0")
}

func TestScoreCommandMissingFFprobe(t *testing.T) {
	env := setupCLIEnv(t, 16, 44100, "memory")
	cfg, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatal(err)
	}
	broken := strings.Replace(string(cfg), "[probe]\nffprobe_binary =", "[probe]\nffprobe_binary = \"clearly-not-ffprobe\"\n#", 1)
	if err := os.WriteFile(env.configPath, []byte(broken), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err = runCLI(t, append([]string{"score", "--release-id", "rel-1"}, env.items...), env.configPath)
	if err == nil || !strings.Contains(err.Error(), "FFprobe") {
		t.Fatalf("expected missing ffprobe error, got %v", err)
	}
}
