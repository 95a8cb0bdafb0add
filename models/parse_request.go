package models

// ParseRequest is the input to the page parser.
type ParseRequest struct {
	ID   PageID
	URL  string
	HTML string
}
