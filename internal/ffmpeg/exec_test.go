package ffmpeg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_reduceFfmpegError_ExtractsEmbeddedMessage(t *testing.T) {
	raw := errors.New(`ffmpeg version 6.0 Copyright... configuration: --enable-gpl
message: {"error": {"string": "Invalid data found when processing input"}}`)

	reduced := reduceFfmpegError(raw)
	assert.Equal(t, "Invalid data found when processing input", reduced.Error())
}

func Test_reduceFfmpegError_PassesThroughUnstructuredErrors(t *testing.T) {
	raw := errors.New("exit status 1")

	reduced := reduceFfmpegError(raw)
	assert.Equal(t, raw, reduced)
}

func Test_reduceFfmpegError_InvalidEmbeddedJson(t *testing.T) {
	raw := errors.New(`message: {"error": broken}`)

	reduced := reduceFfmpegError(raw)
	assert.Equal(t, `{"error": broken}`, reduced.Error())
}
