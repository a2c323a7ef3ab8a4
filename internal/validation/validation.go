// Package validation implements the structural phase of the two-phase
// validation engine: field-level checks that need no store access. The
// business phase (uniqueness, duplicate registration) lives in the services,
// which append its findings to the same Errors value so that a caller sees
// one merged set before any mutation is attempted.
package validation

import "fmt"

// Field length limits shared by the structural rules.
const (
	MaxNameLength     = 64
	MaxUsernameLength = 64
	MinPasswordLength = 8
	MaxPasswordLength = 64
	MaxFreeTextLength = 400
)

// Messages attached by the business phase. Kept here so services and tests
// agree on the exact wording.
const (
	MsgNameTaken         = "an event with this name already exists"
	MsgAlreadyRegistered = "already registered for this event"
	MsgUsernameTaken     = "username is already taken"
)

// FieldError is one rejected field with its message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors accumulates field errors. A nil or empty Errors means the input
// passed. Errors is a normal return value, never an error.
type Errors []FieldError

// Add appends a field error and returns the extended slice.
func (e Errors) Add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

// Fields returns the errors as a field-to-message map. The first message for
// a field wins.
func (e Errors) Fields() map[string]string {
	if len(e) == 0 {
		return nil
	}
	m := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// Single returns an Errors holding exactly one field error.
func Single(field, message string) Errors {
	return Errors{{Field: field, Message: message}}
}

// Event checks the structural rules for event create and update. The name is
// checked as typed; trimming and escaping happen after validation so error
// messages refer to the user's original input.
func Event(name, description string) Errors {
	var errs Errors
	errs = required(errs, "name", name)
	errs = maxLength(errs, "name", name, MaxNameLength)
	errs = maxLength(errs, "description", description, MaxFreeTextLength)
	return errs
}

// Comment checks the structural rules for an event registration.
func Comment(comment string) Errors {
	return maxLength(nil, "comment", comment, MaxFreeTextLength)
}

// SignUp checks the structural rules for account creation. An empty password
// is reported as too short, not as over the maximum.
func SignUp(name, username, password string) Errors {
	var errs Errors
	errs = required(errs, "name", name)
	errs = maxLength(errs, "name", name, MaxNameLength)
	errs = required(errs, "username", username)
	errs = maxLength(errs, "username", username, MaxUsernameLength)
	if len(password) < MinPasswordLength {
		errs = errs.Add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	} else if len(password) > MaxPasswordLength {
		errs = errs.Add("password", fmt.Sprintf("password must be at most %d characters", MaxPasswordLength))
	}
	return errs
}

func required(errs Errors, field, value string) Errors {
	if isBlank(value) {
		return errs.Add(field, field+" must not be empty")
	}
	return errs
}

func maxLength(errs Errors, field, value string, max int) Errors {
	if len([]rune(value)) > max {
		return errs.Add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return errs
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
