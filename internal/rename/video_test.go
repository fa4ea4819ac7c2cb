package rename_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbomb79/MediaKit/internal/ffmpeg"
	"github.com/hbomb79/MediaKit/internal/rename"
	"github.com/hbomb79/MediaKit/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVideoConfig() rename.VideoConfig {
	return rename.VideoConfig{FfprobeBinaryPath: "/usr/bin/ffprobe"}
}

// staticProbe is a CommandRunner serving a canned ffprobe payload.
type staticProbe string

func (probe staticProbe) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return []byte(probe), nil
}

func Test_RenameVideos_UsesContainerCreationTime(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "export.mp4"))

	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		return time.Date(2023, 12, 31, 12, 34, 56, 0, time.UTC), nil
	})

	run, err := service.RenameVideos(context.Background(), dir, false)
	assert.Nil(t, err)
	assert.Equal(t, 1, run.Succeeded())
	assert.FileExists(t, filepath.Join(dir, "2023-12-31_export.mp4"))
}

func Test_RenameVideos_FallsBackToModificationTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "untagged.mp4")
	touch(t, path)

	modTime := time.Date(2020, 5, 17, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, modTime, modTime))

	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		return time.Time{}, ffmpeg.ErrNoCreationTime
	})

	run, err := service.RenameVideos(context.Background(), dir, false)
	assert.Nil(t, err)
	assert.Equal(t, 1, run.Succeeded())
	assert.FileExists(t, filepath.Join(dir, "2020-05-17_untagged.mp4"))
}

func Test_RenameVideos_UnparseableCreationTimeFallsBackToModificationTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weird.mp4")
	touch(t, path)

	modTime := time.Date(2020, 5, 17, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, modTime, modTime))

	// A tag that is present but in an unknown format surfaces as
	// ErrNoCreationTime, which must behave exactly like a missing tag.
	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		_, err := ffmpeg.CreationTime(ctx, staticProbe(`{"format": {"tags": {"creation_time": "31/12/2023"}}, "streams": []}`), "/usr/bin/ffprobe", path)
		return time.Time{}, err
	})

	run, err := service.RenameVideos(context.Background(), dir, false)
	assert.Nil(t, err)
	assert.Equal(t, 1, run.Succeeded())
	assert.Equal(t, 0, run.Skipped())
	assert.FileExists(t, filepath.Join(dir, "2020-05-17_weird.mp4"))
}

func Test_RenameVideos_ProbeFailureIsSkippedNotFailed(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "odd.mp4"))

	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		return time.Time{}, assert.AnError
	})

	run, err := service.RenameVideos(context.Background(), dir, false)
	assert.Nil(t, err)
	assert.Equal(t, 0, run.Failed())
	assert.Equal(t, 1, run.Skipped())
	assert.FileExists(t, filepath.Join(dir, "odd.mp4"))
}

func Test_RenameVideos_AlreadyDatedFilesAreLeftAlone(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "2019-08-01_clip.mp4"))

	calls := 0
	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		calls++
		return time.Now(), nil
	})

	run, err := service.RenameVideos(context.Background(), dir, false)
	assert.Nil(t, err)
	assert.Equal(t, 1, run.Skipped())
	assert.Equal(t, 0, calls)
}

func Test_RenameVideos_RecursiveRenamesStayInTheirDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "clip.mp4"))
	touch(t, filepath.Join(dir, "sub", "clip.mp4"))

	when := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		return when, nil
	})

	run, err := service.RenameVideos(context.Background(), dir, true)
	assert.Nil(t, err)
	assert.Equal(t, 2, run.Succeeded())

	// Renames stay within each file's own directory, so both targets
	// exist without clashing.
	assert.FileExists(t, filepath.Join(dir, "2023-12-31_clip.mp4"))
	assert.FileExists(t, filepath.Join(dir, "sub", "2023-12-31_clip.mp4"))
}

func Test_RenameVideos_CancelledContextStopsTheRunButStillSummarizes(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.mp4"))

	sink := &bytes.Buffer{}
	logger.SetSink(sink)
	defer logger.SetSink(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := rename.NewVideoService(testVideoConfig(), func(ctx context.Context, path string) (time.Time, error) {
		return time.Now(), nil
	})

	_, err := service.RenameVideos(ctx, dir, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, sink.String(), "0 succeeded, 0 skipped, 0 failed")
}
