package model

import "time"

// Level is the top of the academic hierarchy (e.g. "Primary", "Secondary").
type Level struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Track is a stream within a level (e.g. "Science", "Humanities").
type Track struct {
	ID        int       `json:"id"`
	LevelID   int       `json:"level_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subject is a taught discipline within a track.
type Subject struct {
	ID        int       `json:"id"`
	TrackID   int       `json:"track_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLevelRequest is the payload for creating or updating a level.
type CreateLevelRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	SortOrder int    `json:"sort_order" binding:"omitempty,min=0"`
}

// CreateTrackRequest is the payload for creating or updating a track.
type CreateTrackRequest struct {
	LevelID int    `json:"level_id" binding:"required"`
	Name    string `json:"name" binding:"required,min=1,max=100"`
}

// CreateSubjectRequest is the payload for creating or updating a subject.
type CreateSubjectRequest struct {
	TrackID int    `json:"track_id" binding:"required"`
	Name    string `json:"name" binding:"required,min=1,max=100"`
}
