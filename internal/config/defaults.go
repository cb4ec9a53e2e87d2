package config

const (
	defaultMediaDir          = "~/.local/share/scribe/media"
	defaultMetadataDir       = "~/.local/share/scribe/metadata"
	defaultTranscriptsDir    = "~/.local/share/scribe/transcripts"
	defaultStagingDir        = "~/.local/share/scribe/staging"
	defaultLogDir            = "~/.local/share/scribe/logs"
	defaultAPIBind           = "127.0.0.1:8080"
	defaultFFmpegBinary      = "ffmpeg"
	defaultContainerRuntime  = "podman"
	defaultWhisperXImage     = "ghcr.io/jim60105/whisperx:base-en"
	defaultComputeType       = "int8"
	defaultQueuePollInterval = 5
	defaultToolTimeout       = 0
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaDir:       defaultMediaDir,
			MetadataDir:    defaultMetadataDir,
			TranscriptsDir: defaultTranscriptsDir,
			StagingDir:     defaultStagingDir,
			LogDir:         defaultLogDir,
			APIBind:        defaultAPIBind,
		},
		Tools: Tools{
			FFmpeg:           defaultFFmpegBinary,
			ContainerRuntime: defaultContainerRuntime,
			WhisperXImage:    defaultWhisperXImage,
			ComputeType:      defaultComputeType,
		},
		Workflow: Workflow{
			QueuePollInterval: defaultQueuePollInterval,
			ToolTimeout:       defaultToolTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
