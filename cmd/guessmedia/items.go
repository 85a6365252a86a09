package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"guessmedia/internal/deps"
	"guessmedia/internal/identification"
	"guessmedia/internal/logging"
	"guessmedia/internal/media/ffprobe"
)

// itemsFromPaths returns items carrying only their absolute paths.
func itemsFromPaths(paths []string) ([]identification.Item, error) {
	items := make([]identification.Item, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}
		items = append(items, identification.Item{Path: abs})
	}
	return items, nil
}

// probeItems reads bit depth and sample rate of every path with ffprobe.
func probeItems(ctx context.Context, binary string, paths []string, logger *slog.Logger) ([]identification.Item, error) {
	if err := deps.RequireAll(deps.CheckBinaries([]deps.Requirement{deps.FFprobe(binary)})); err != nil {
		return nil, fmt.Errorf("%w; set probe.ffprobe_binary", err)
	}
	items, err := itemsFromPaths(paths)
	if err != nil {
		return nil, err
	}
	for i := range items {
		result, err := ffprobe.Inspect(ctx, binary, items[i].Path)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", items[i].Path, err)
		}
		audio, ok := result.PrimaryAudio()
		if !ok {
			return nil, fmt.Errorf("probe %s: no audio stream", items[i].Path)
		}
		items[i].BitDepth = audio.BitDepth()
		items[i].SampleRate = audio.SampleRateHz()
		logger.Debug("probed item",
			logging.String(logging.FieldPath, items[i].Path),
			logging.String("codec", audio.CodecName),
			logging.Int("bitdepth", items[i].BitDepth),
			logging.Int("samplerate", items[i].SampleRate))
	}
	return items, nil
}
