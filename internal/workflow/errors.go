// filepath: internal/workflow/errors.go
package workflow

import "fmt"

// Kind identifies a workflow failure.
type Kind int

const (
	NoRecordPermission Kind = iota + 1
	AudioSystemUnavailable
	AudioFileNotCreated
	EmptyAudioFile
	CoreDataSaveFailed
	NoAudioFile
	AudioFileNotFound
	StorageSpaceLow
	EnrichmentNotConfigured
	EnrichmentInProgress
)

var kindNames = map[Kind]string{
	NoRecordPermission:      "no_record_permission",
	AudioSystemUnavailable:  "audio_system_unavailable",
	AudioFileNotCreated:     "audio_file_not_created",
	EmptyAudioFile:          "empty_audio_file",
	CoreDataSaveFailed:      "core_data_save_failed",
	NoAudioFile:             "no_audio_file",
	AudioFileNotFound:       "audio_file_not_found",
	StorageSpaceLow:         "storage_space_low",
	EnrichmentNotConfigured: "enrichment_not_configured",
	EnrichmentInProgress:    "enrichment_in_progress",
}

var kindMessages = map[Kind]string{
	NoRecordPermission:      "Microphone permission is required to record audio",
	AudioSystemUnavailable:  "Audio system is not available",
	AudioFileNotCreated:     "Failed to create audio file",
	EmptyAudioFile:          "Audio file is empty or corrupted",
	CoreDataSaveFailed:      "Failed to save entry to database",
	NoAudioFile:             "Entry does not have an associated audio file",
	AudioFileNotFound:       "Audio file not found on device",
	StorageSpaceLow:         "Not enough storage space available",
	EnrichmentNotConfigured: "Transcription service is not configured",
	EnrichmentInProgress:    "Entry is already being transcribed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Message is the user-facing description of the kind.
func (k Kind) Message() string {
	if s, ok := kindMessages[k]; ok {
		return s
	}
	return "Unknown workflow error"
}

// Error is a typed workflow failure. Err carries the collaborator cause, if any.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
	}
	return e.Kind.Message()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrNoRecordPermission      = &Error{Kind: NoRecordPermission}
	ErrAudioSystemUnavailable  = &Error{Kind: AudioSystemUnavailable}
	ErrAudioFileNotCreated     = &Error{Kind: AudioFileNotCreated}
	ErrEmptyAudioFile          = &Error{Kind: EmptyAudioFile}
	ErrCoreDataSaveFailed      = &Error{Kind: CoreDataSaveFailed}
	ErrNoAudioFile             = &Error{Kind: NoAudioFile}
	ErrAudioFileNotFound       = &Error{Kind: AudioFileNotFound}
	ErrStorageSpaceLow         = &Error{Kind: StorageSpaceLow}
	ErrEnrichmentNotConfigured = &Error{Kind: EnrichmentNotConfigured}
	ErrEnrichmentInProgress    = &Error{Kind: EnrichmentInProgress}
)
