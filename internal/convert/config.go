package convert

// Config holds the converter's transcode parameters. Defaults mirror
// the ffmpeg invocation the tool has always used: H.264 video, AAC
// audio, quality-targeted rate control.
type Config struct {
	FfmpegBinaryPath  string `yaml:"ffmpeg_binary" env:"CONVERT_FFMPEG_BINARY_PATH" env-default:"/usr/bin/ffmpeg" validate:"required"`
	FfprobeBinaryPath string `yaml:"ffprobe_binary" env:"CONVERT_FFPROBE_BINARY_PATH" env-default:"/usr/bin/ffprobe" validate:"required"`
	TargetFormat      string `yaml:"target_format" env:"CONVERT_TARGET_FORMAT" env-default:"mp4" validate:"required"`
	VideoCodec        string `yaml:"video_codec" env:"CONVERT_VIDEO_CODEC" env-default:"libx264"`
	AudioCodec        string `yaml:"audio_codec" env:"CONVERT_AUDIO_CODEC" env-default:"aac"`
	Crf               uint32 `yaml:"crf" env:"CONVERT_CRF" env-default:"18"`
	Preset            string `yaml:"preset" env:"CONVERT_PRESET" env-default:"slow"`
	DatePrefix        bool   `yaml:"date_prefix" env:"CONVERT_DATE_PREFIX" env-default:"true"`
}
