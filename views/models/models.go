package models

import "time"

// NoteView represents a dream note for template rendering
type NoteView struct {
	ID              string
	Title           string
	Description     string
	DescriptionHTML string // rendered markdown, already sanitized
	Mood            string
	CreatedAt       time.Time
}
