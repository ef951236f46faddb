package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new API user with
// password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest changes the authenticated user's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User represents an API user profile for responses.
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with user data and
// authentication token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// StartSessionRequest opens a new interview session from the candidate's
// free-text (or JSON-line) introduction.
type StartSessionRequest struct {
	CandidateText string `json:"candidate_text" validate:"required,min=1"`
}

// TurnRequest submits one candidate message to an active session.
type TurnRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// TurnResponse carries the single outward agent message for a turn.
type TurnResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	TurnID    int       `json:"turn_id"`
	AIMessage string    `json:"ai_message"`
	Finished  bool      `json:"finished"`
}

// SessionResponse describes a session after creation or finish.
type SessionResponse struct {
	SessionID       uuid.UUID         `json:"session_id"`
	ParticipantName string            `json:"participant_name"`
	Profile         *CandidateProfile `json:"profile,omitempty"`
	AIMessage       string            `json:"ai_message,omitempty"`
	Finished        bool              `json:"finished"`
	FinalFeedback   string            `json:"final_feedback,omitempty"`
}

var validate = validator.New()

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the StartSessionRequest using the validator.
func (r *StartSessionRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the TurnRequest using the validator.
func (r *TurnRequest) Validate() error {
	return validate.Struct(r)
}
