package whisperx

// Config captures runtime settings for WhisperX invocations.
type Config struct {
	// Runtime is the container runtime binary (podman or docker).
	Runtime string
	// Image is the WhisperX container image reference.
	Image string
	// ComputeType selects the model's compute precision (e.g. "int8").
	ComputeType string
}

// WhisperX configuration constants.
const (
	DefaultRuntime     = "podman"
	DefaultImage       = "ghcr.io/jim60105/whisperx:base-en"
	DefaultComputeType = "int8"
	OutputFormat       = "json"
)
