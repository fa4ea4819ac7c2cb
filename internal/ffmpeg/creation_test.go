package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var errExpected = errors.New("test: expected error")

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(name, args)
	return called.Get(0).([]byte), called.Error(1)
}

func runnerReturning(payload string) *mockRunner {
	runner := &mockRunner{}
	runner.On("Output", mock.Anything, mock.Anything).Return([]byte(payload), nil)
	return runner
}

func Test_CreationTime_PrefersFormatTags(t *testing.T) {
	runner := runnerReturning(`{
		"format": {"tags": {"creation_time": "2023-12-31T12:34:56.000000Z"}},
		"streams": [{"tags": {"creation_time": "2001-01-01T00:00:00.000000Z"}}]
	}`)

	created, err := CreationTime(context.Background(), runner, "ffprobe", "in.mp4")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 12, 34, 56, 0, time.UTC), created)
}

func Test_CreationTime_FallsBackToStreamTags(t *testing.T) {
	runner := runnerReturning(`{
		"format": {"tags": {"encoder": "Lavf58"}},
		"streams": [
			{"tags": {}},
			{"tags": {"creation_time": "2022-06-15 08:30:00"}}
		]
	}`)

	created, err := CreationTime(context.Background(), runner, "ffprobe", "in.mp4")
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2022, 6, 15, 8, 30, 0, 0, time.UTC), created)
}

func Test_CreationTime_NoTagPresent(t *testing.T) {
	runner := runnerReturning(`{"format": {"tags": {}}, "streams": [{"tags": {}}]}`)

	_, err := CreationTime(context.Background(), runner, "ffprobe", "in.mp4")
	assert.ErrorIs(t, err, ErrNoCreationTime)
}

func Test_CreationTime_ProbeFailure(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Output", mock.Anything, mock.Anything).Return([]byte{}, errExpected)

	_, err := CreationTime(context.Background(), runner, "ffprobe", "in.mp4")
	assert.ErrorIs(t, err, errExpected)
}

func Test_CreationTime_MalformedProbeOutput(t *testing.T) {
	runner := runnerReturning(`not json at all`)

	_, err := CreationTime(context.Background(), runner, "ffprobe", "in.mp4")
	assert.NotNil(t, err)
	assert.NotErrorIs(t, err, ErrNoCreationTime)
}

func Test_parseCreationTime_Layouts(t *testing.T) {
	expected := time.Date(2023, 12, 31, 12, 34, 56, 0, time.UTC)

	for _, tag := range []string{
		"2023-12-31T12:34:56.000000Z",
		"2023-12-31T12:34:56",
		"2023-12-31 12:34:56",
		"2023-12-31 12:34:56.123",
	} {
		parsed, err := parseCreationTime(tag)
		assert.Nil(t, err, "tag %s", tag)
		assert.Equal(t, expected, parsed, "tag %s", tag)
	}

	_, err := parseCreationTime("31/12/2023")
	assert.ErrorIs(t, err, ErrNoCreationTime)
}

func Test_CreationTime_UnrecognisedTagFormatReportsNoCreationTime(t *testing.T) {
	runner := runnerReturning(`{"format": {"tags": {"creation_time": "31/12/2023"}}, "streams": []}`)

	_, err := CreationTime(context.Background(), runner, "ffprobe", "in.mp4")
	assert.ErrorIs(t, err, ErrNoCreationTime)
}
