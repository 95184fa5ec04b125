package validation

import (
	"strings"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/request"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 2000
	maxISBNLength        = 20
)

// ValidateCreateBook validates a book creation request.
//
// Required fields:
//   - title: non-blank, at most 255 characters
//   - launchDate: YYYY-MM-DD
//
// Optional fields are length-checked only.
func ValidateCreateBook(req request.CreateBookRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Title) == "" {
		errors["title"] = "title is required"
	} else if len(req.Title) > maxTitleLength {
		errors["title"] = "title must be 255 characters or less"
	}

	checkDate(errors, "launchDate", req.LaunchDate)

	if len(req.Description) > maxDescriptionLength {
		errors["description"] = "description must be 2000 characters or less"
	}
	if len(req.ISBN) > maxISBNLength {
		errors["isbn"] = "isbn must be 20 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateBook validates a book update request. Only provided fields are checked.
func ValidateUpdateBook(req request.UpdateBookRequest) error {
	errors := make(map[string]string)

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			errors["title"] = "title cannot be empty"
		} else if len(*req.Title) > maxTitleLength {
			errors["title"] = "title must be 255 characters or less"
		}
	}
	if req.LaunchDate != nil {
		checkDate(errors, "launchDate", *req.LaunchDate)
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLength {
		errors["description"] = "description must be 2000 characters or less"
	}
	if req.ISBN != nil && len(*req.ISBN) > maxISBNLength {
		errors["isbn"] = "isbn must be 20 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
