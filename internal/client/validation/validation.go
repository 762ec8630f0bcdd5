// Package validation holds the client-side form rules shared by the
// registration and user create/edit flows.
//
// The rules are advisory: they exist to catch obvious mistakes before a
// request is sent. The server remains authoritative and the client never
// treats a passing form as a security guarantee.
package validation

import "regexp"

// Mode selects the rule set variant.
type Mode int

const (
	// ModeCreate requires a password (registration, new user).
	ModeCreate Mode = iota
	// ModeEdit treats a blank password as "keep the current one".
	ModeEdit
)

// Form carries the raw field values as typed by the user.
type Form struct {
	Email           string
	Username        string
	FullName        string
	Password        string
	ConfirmPassword string
}

// local-part "@" domain "." tld, no embedded whitespace
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email is invalid"
	MsgUsernameRequired = "Username is required"
	MsgUsernameTooShort = "Username must be at least 3 characters"
	MsgPasswordRequired = "Password is required for new users"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgPasswordMismatch = "Passwords do not match"
)

// Validate applies the shared rule set and returns field-keyed messages.
// An empty map means the form may be submitted.
func Validate(f Form, mode Mode) map[string]string {
	errs := make(map[string]string)

	if f.Email == "" {
		errs["email"] = MsgEmailRequired
	} else if !emailPattern.MatchString(f.Email) {
		errs["email"] = MsgEmailInvalid
	}

	if f.Username == "" {
		errs["username"] = MsgUsernameRequired
	} else if len(f.Username) < 3 {
		errs["username"] = MsgUsernameTooShort
	}

	if mode == ModeCreate && f.Password == "" {
		errs["password"] = MsgPasswordRequired
	} else if f.Password != "" && len(f.Password) < 8 {
		errs["password"] = MsgPasswordTooShort
	}

	// compared verbatim, independent of other field validity
	if f.Password != "" && f.Password != f.ConfirmPassword {
		errs["confirm_password"] = MsgPasswordMismatch
	}

	// full name is unconstrained

	return errs
}
