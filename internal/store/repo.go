package store

import (
	"context"
	"time"

	"github.com/abhisek/mindframe/internal/likert"
	"github.com/abhisek/mindframe/internal/profile"
)

// Session groups the responses of one questionnaire sitting.
type Session struct {
	ID        string
	Label     string
	CreatedAt time.Time
}

// SessionRepo manages questionnaire sessions.
type SessionRepo interface {
	// Create starts a new session with an optional human label.
	Create(ctx context.Context, label string) (*Session, error)

	// Get returns a session by ID, or nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all sessions, newest first.
	List(ctx context.Context) ([]Session, error)

	// Delete removes a session and its responses and reports.
	Delete(ctx context.Context, id string) error
}

// ResponseRepo manages the answers recorded under a session.
type ResponseRepo interface {
	// Append stores responses for a session. Re-answering an item
	// replaces the earlier answer.
	Append(ctx context.Context, sessionID string, responses []likert.Response) error

	// BySession returns a session's responses in insertion order.
	BySession(ctx context.Context, sessionID string) ([]likert.Response, error)
}

// ReportRepo manages scored report snapshots.
type ReportRepo interface {
	// Save stores a new report snapshot for the session.
	Save(ctx context.Context, sessionID string, rep *profile.Report) error

	// Latest returns the most recent report and its creation time, or
	// nil if none exist.
	Latest(ctx context.Context, sessionID string) (*profile.Report, time.Time, error)

	// Prune deletes all but the N most recent reports of a session.
	Prune(ctx context.Context, sessionID string, keep int) error
}
