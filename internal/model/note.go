// Package model defines the study assistant's core data types.
package model

import "time"

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "Untitled Document"

// Note is a study note. ID is assigned once at creation and never reused.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Created    time.Time `json:"created"`
	LastEdited time.Time `json:"last_edited"`
}

// ChatMessage is one turn of the assistant chat.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
