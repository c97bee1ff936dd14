package domain

import "time"

type SessionID string

type ChunkIndex int

// RegisterResult is the tracker's verdict after recording one chunk.
type RegisterResult int

const (
	StillPending RegisterResult = iota
	Complete
)

func (r RegisterResult) String() string {
	switch r {
	case Complete:
		return "complete"
	default:
		return "still_pending"
	}
}

// SessionState is the bookkeeping kept for one upload session.
// Received holds the distinct chunk indices recorded so far.
type SessionState struct {
	SessionID   SessionID
	TotalChunks int
	Received    map[ChunkIndex]struct{}
	UpdatedAt   time.Time
	Assembling  bool
}

func NewSessionState(id SessionID, total int, now time.Time) *SessionState {
	return &SessionState{
		SessionID:   id,
		TotalChunks: total,
		Received:    make(map[ChunkIndex]struct{}, total),
		UpdatedAt:   now,
	}
}

func (s *SessionState) IsComplete() bool {
	return len(s.Received) == s.TotalChunks
}
