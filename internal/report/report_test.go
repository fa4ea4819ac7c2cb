package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hbomb79/MediaKit/internal/report"
	"github.com/hbomb79/MediaKit/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func init() {
	logger.SetMinLoggingLevel(logger.VERBOSE.Level())
}

func Test_Run_TracksOutcomes(t *testing.T) {
	logger.SetSink(&bytes.Buffer{})

	run := report.NewRun(logger.Get("Test"))
	run.Success("converted a\n")
	run.Success("converted b\n")
	run.Skip("skipped c\n")
	run.Fail("d.mov", errors.New("broken container"))

	assert.Equal(t, 2, run.Succeeded())
	assert.Equal(t, 1, run.Skipped())
	assert.Equal(t, 1, run.Failed())
	assert.Equal(t, "d.mov", run.Failures()[0].Path)
}

func Test_Run_SummaryIncludesCounts(t *testing.T) {
	sink := &bytes.Buffer{}
	logger.SetSink(sink)

	run := report.NewRun(logger.Get("Test"))
	run.Success("converted a\n")
	run.Fail("b.mov", errors.New("broken container"))
	run.Summarize()

	assert.True(t, strings.Contains(sink.String(), "1 succeeded, 0 skipped, 1 failed"))
}
