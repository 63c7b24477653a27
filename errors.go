package agriassist

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Sentinel errors returned by the store interfaces. Handlers translate
// these into client responses; anything else is a server error.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTodoNotFound  = errors.New("todo not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// Client-facing messages. The credential and OTP failures are deliberately
// uniform so responses never reveal which check failed.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidOTP         = "Invalid OTP"
	MsgExpiredOTP         = "OTP expired or invalid"
	MsgInvalidResetToken  = "Invalid reset token"
	MsgExpiredResetToken  = "Reset token expired or invalid"
	MsgUserExists         = "User already exists"
	MsgForgotAck          = "If this email exists, reset instructions were sent"
	MsgServerError        = "Server error"
)

// writeJSON writes payload as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeMessage writes the standard {"message": ...} error/ack body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
