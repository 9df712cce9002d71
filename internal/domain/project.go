// File: internal/domain/project.go
package domain

// Project is a showcase project as returned by similarity search.
// Title is always present; Description defaults to "" when the stored
// payload has no projectDescription field.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
	SourceCode  string `json:"sourceCode,omitempty"`
	HowItsMade  string `json:"howItsMade,omitempty"`
	Hackathon   string `json:"hackathon,omitempty"`
	Prize       bool   `json:"prize,omitempty"`
}
