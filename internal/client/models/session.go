package models

import (
	"fmt"
	"time"
)

// SessionStatus is the orchestrator lifecycle state.
type SessionStatus int

const (
	SessionIdle SessionStatus = iota
	SessionLoading
	SessionReady
	SessionUploading
	SessionCompleted
	SessionFailed
)

func (s SessionStatus) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionLoading:
		return "loading"
	case SessionReady:
		return "ready"
	case SessionUploading:
		return "uploading"
	case SessionCompleted:
		return "completed"
	case SessionFailed:
		return "failed"
	default:
		return fmt.Sprintf("SessionStatus(%d)", int(s))
	}
}

// SessionState is a snapshot of what the user sees. Message is overwritten
// on every transition.
type SessionState struct {
	Status   SessionStatus
	Message  string
	Loaded   int
	Selected int
	Uploaded int
}

// Outcome records how one asset of a batch ended.
type Outcome struct {
	AssetID  string
	BlobName string
	Err      error
}

// OK reports whether the asset was uploaded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// UploadRecord is one ledger row written after a successful upload.
type UploadRecord struct {
	ID         string
	AssetID    string
	Filename   string
	BlobName   string
	Size       int64
	SHA256     string
	UploadedAt time.Time
}
