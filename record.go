package contextkey

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current context record schema version.
const SchemaVersion = "1"

// Persistence controls how long a consuming application may retain the
// record's content.
type Persistence string

const (
	// PersistenceEphemeral allows use for the current request only.
	PersistenceEphemeral Persistence = "ephemeral"
	// PersistenceSession allows retention for the current session.
	PersistenceSession Persistence = "session"
	// PersistencePermanent allows indefinite retention.
	PersistencePermanent Persistence = "permanent"
)

// PIIHandling controls how a consuming application must treat personally
// identifying information in the record.
type PIIHandling string

const (
	// PIIStrict forbids storing or echoing any PII.
	PIIStrict PIIHandling = "strict"
	// PIIModerate allows PII use within the active conversation.
	PIIModerate PIIHandling = "moderate"
	// PIIPermissive places no additional restrictions on PII.
	PIIPermissive PIIHandling = "permissive"
)

// Profile describes the user's interaction preferences.
type Profile struct {
	// DisplayName is how the user wants to be addressed.
	DisplayName string `json:"display_name"`
	// Tone is the preferred response style (e.g. "concise").
	Tone string `json:"tone"`
	// Domains lists topic areas the user works in. Order is significant.
	Domains []string `json:"domains"`
}

// Policy describes what a consuming application may do with the record.
type Policy struct {
	// Writeback indicates whether the application may append new memories.
	Writeback bool `json:"writeback"`
	// Persistence is the retention policy for record content.
	Persistence Persistence `json:"persistence"`
	// PIIHandling is the policy for personally identifying information.
	PIIHandling PIIHandling `json:"pii_handling"`
}

// DataSource is a reference to an external data source the user has
// connected. Only the reference travels in the key, never the data.
type DataSource struct {
	// ID uniquely identifies the source reference.
	ID string `json:"id"`
	// Type is the source kind (e.g. "notion", "gdrive", "rss").
	Type string `json:"type"`
	// Name is the human-readable source label.
	Name string `json:"name"`
}

// MemoryEntry is a single remembered fact or preference.
type MemoryEntry struct {
	// ID uniquely identifies the entry.
	ID string `json:"id"`
	// Content is the remembered text.
	Content string `json:"content"`
	// Timestamp is when the entry was recorded, in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Tags optionally categorize the entry.
	Tags []string `json:"tags,omitempty"`
	// Source optionally names the application that recorded the entry.
	Source string `json:"source,omitempty"`
}

// ContextRecord is the versioned document a context key carries: the user's
// profile, usage policy, connected sources, and memories.
//
// Timestamps are Unix milliseconds so the record round-trips exactly
// through every codec. UpdatedAt is never less than CreatedAt.
type ContextRecord struct {
	// Version is the schema version. Required.
	Version string `json:"version"`
	// ID uniquely identifies the record.
	ID string `json:"id"`
	// CreatedAt is the record creation time in Unix milliseconds.
	CreatedAt int64 `json:"created_at"`
	// UpdatedAt is the last modification time in Unix milliseconds.
	UpdatedAt int64 `json:"updated_at"`
	// Profile holds the user's interaction preferences.
	Profile Profile `json:"profile"`
	// Policy holds the usage policy.
	Policy Policy `json:"policy"`
	// Sources lists connected data-source references.
	Sources []DataSource `json:"sources,omitempty"`
	// Memories lists remembered entries.
	Memories []MemoryEntry `json:"memories,omitempty"`
}

// NewContextRecord creates a record with a fresh UUID, the current schema
// version, and both timestamps set from the supplied clock value. The
// caller supplies the time; this package never reads the system clock.
func NewContextRecord(now time.Time) *ContextRecord {
	ts := now.UnixMilli()
	return &ContextRecord{
		Version:   SchemaVersion,
		ID:        uuid.NewString(),
		CreatedAt: ts,
		UpdatedAt: ts,
		Policy: Policy{
			Persistence: PersistenceSession,
			PIIHandling: PIIModerate,
		},
	}
}

// NewMemoryEntry creates a memory entry with a fresh UUID and a timestamp
// from the supplied clock value.
func NewMemoryEntry(content string, now time.Time) MemoryEntry {
	return MemoryEntry{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: now.UnixMilli(),
	}
}

// Touch advances UpdatedAt to the supplied clock value. It never moves
// UpdatedAt backwards, keeping timestamps monotonic non-decreasing.
func (r *ContextRecord) Touch(now time.Time) {
	if ts := now.UnixMilli(); ts > r.UpdatedAt {
		r.UpdatedAt = ts
	}
}

// Validate checks the record against its schema. It collects every problem
// found and returns them as a single *ValidationError, or nil if the record
// is valid.
func (r *ContextRecord) Validate() error {
	var problems []string

	if r.Version == "" {
		problems = append(problems, "version is required")
	}
	if r.ID == "" {
		problems = append(problems, "id is required")
	}
	if r.UpdatedAt < r.CreatedAt {
		problems = append(problems, "updated_at must not precede created_at")
	}

	switch r.Policy.Persistence {
	case PersistenceEphemeral, PersistenceSession, PersistencePermanent:
	default:
		problems = append(problems, fmt.Sprintf("unknown persistence policy %q", r.Policy.Persistence))
	}

	switch r.Policy.PIIHandling {
	case PIIStrict, PIIModerate, PIIPermissive:
	default:
		problems = append(problems, fmt.Sprintf("unknown pii_handling policy %q", r.Policy.PIIHandling))
	}

	for i, src := range r.Sources {
		if src.ID == "" {
			problems = append(problems, fmt.Sprintf("sources[%d]: id is required", i))
		}
		if src.Type == "" {
			problems = append(problems, fmt.Sprintf("sources[%d]: type is required", i))
		}
	}

	for i, mem := range r.Memories {
		if mem.ID == "" {
			problems = append(problems, fmt.Sprintf("memories[%d]: id is required", i))
		}
		if mem.Content == "" {
			problems = append(problems, fmt.Sprintf("memories[%d]: content is required", i))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}
