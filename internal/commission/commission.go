// Package commission stores commission requests sent from the contact page.
package commission

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ProjectType is the kind of work a client asks for.
type ProjectType string

const (
	ProjectPortrait  ProjectType = "portrait"
	ProjectScene     ProjectType = "scene"
	ProjectCharacter ProjectType = "character"
	ProjectOther     ProjectType = "other"
)

// Valid reports whether p is a known project type.
func (p ProjectType) Valid() bool {
	switch p {
	case ProjectPortrait, ProjectScene, ProjectCharacter, ProjectOther:
		return true
	}
	return false
}

// Validation errors.
var (
	ErrNameRequired   = errors.New("name is required")
	ErrEmailRequired  = errors.New("email is required")
	ErrEmailInvalid   = errors.New("email is not a valid address")
	ErrUnknownProject = errors.New("unknown project type")
	ErrMessageTooLong = errors.New("message is too long")
	ErrNotFound       = errors.New("commission not found")
)

// maxMessage caps the free-text part of a request.
const maxMessage = 4000

// Request is one commission enquiry.
type Request struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	ProjectType ProjectType `json:"project_type"`
	Message     string      `json:"message"`
	Rush        bool        `json:"rush"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Normalize trims the user-entered fields and fills in the default project
// type.
func (r *Request) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
	r.ProjectType = ProjectType(strings.ToLower(strings.TrimSpace(string(r.ProjectType))))
	if r.ProjectType == "" {
		r.ProjectType = ProjectOther
	}
}

// Validate checks a normalized request.
func (r Request) Validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Email == "" {
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Address != r.Email {
		return ErrEmailInvalid
	}
	if !r.ProjectType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProject, r.ProjectType)
	}
	if len(r.Message) > maxMessage {
		return fmt.Errorf("%w: %d characters max", ErrMessageTooLong, maxMessage)
	}
	return nil
}

// Price is one line of the pricing card.
type Price struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	// Cents is the starting price in US cents; zero for surcharges.
	Cents int `json:"cents,omitempty"`
	// Percent is a surcharge on top of the base price.
	Percent int `json:"percent,omitempty"`
}

// Pricing returns the pricing card shown next to the commission form.
func Pricing() []Price {
	return []Price{
		{Label: "Portrait", Amount: "from $240", Cents: 24000},
		{Label: "Full scene", Amount: "from $520", Cents: 52000},
		{Label: "Rush delivery", Amount: "add 30%", Percent: 30},
	}
}

// Quote returns the starting price in cents for a request, or zero when the
// project type has no listed price.
func Quote(r Request) int {
	var base int
	switch r.ProjectType {
	case ProjectPortrait:
		base = 24000
	case ProjectScene:
		base = 52000
	default:
		return 0
	}
	if r.Rush {
		base += base * 30 / 100
	}
	return base
}
