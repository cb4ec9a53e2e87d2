package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldFilename is the standardized structured logging key for media filenames.
	FieldFilename = "filename"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldEventType tags log records with a machine-readable event category.
	FieldEventType = "event_type"
	// FieldJobID is the standardized structured logging key for per-job correlation identifiers.
	FieldJobID = "job_id"
)
