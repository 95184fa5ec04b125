package model

import "time"

// Book represents a published work tracked as a financial unit.
// Only the metadata fields may change once expenses or sales reference the book.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LaunchDate  time.Time `json:"launchDate"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Publisher   string    `json:"publisher,omitempty"`
	Illustrator string    `json:"illustrator,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
