package agriassist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

// MinPasswordLength is the minimal gate on new passwords.
const MinPasswordLength = 6

const (
	emailOTPSubject = "Smart Agriculture – Email verification code"
	resetSubject    = "Smart Agriculture – Reset your password"
)

// Auth implements the account verification workflow: signup, login, OTP
// issue/verify for email and mobile, and password reset. Collaborators
// are injected; handlers nil-guard anything optional.
type Auth struct {
	Users    UserStore
	Notifier Notifier
	Signer   *SessionSigner

	// NewID generates user ids. Defaults to random UUIDs.
	NewID func() string

	// FrontendURL is the base for password reset links.
	FrontendURL string
}

type userPayload struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	Mobile           string `json:"mobile,omitempty"`
	IsEmailVerified  bool   `json:"isEmailVerified"`
	IsMobileVerified bool   `json:"isMobileVerified"`
}

func toUserPayload(u *User) userPayload {
	return userPayload{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Mobile:           u.Mobile,
		IsEmailVerified:  u.IsEmailVerified,
		IsMobileVerified: u.IsMobileVerified,
	}
}

// HandleSignup processes user registration. The session token is issued
// before either channel is verified: unverified accounts may use
// authenticated endpoints. That is the intended policy, not an oversight.
func (a *Auth) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if a.Users == nil {
		writeMessage(w, http.StatusInternalServerError, "Signup not configured")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
		State    string `json:"state"`
		District string `json:"district"`
		FarmSize string `json:"farmSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" && req.Mobile == "" {
		writeMessage(w, http.StatusBadRequest, "Email or mobile is required")
		return
	}
	if req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Password is required")
		return
	}
	if len(req.Password) < MinPasswordLength {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
		return
	}

	if req.Email != "" {
		if _, err := a.Users.GetUserByEmail(req.Email); err == nil {
			writeMessage(w, http.StatusConflict, MsgUserExists)
			return
		}
	}
	if req.Mobile != "" {
		if _, err := a.Users.GetUserByMobile(req.Mobile); err == nil {
			writeMessage(w, http.StatusConflict, MsgUserExists)
			return
		}
	}

	passwordHash, err := HashSecret(req.Password)
	if err != nil {
		log.Printf("Signup error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	user := &User{
		ID:           a.newID(),
		Provider:     "local",
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: passwordHash,
		State:        req.State,
		District:     req.District,
		FarmSize:     req.FarmSize,
	}

	// Pending OTPs ride along on the new record; the raw codes go out
	// through the notifier only.
	var emailOTP, mobileOTP string
	if req.Email != "" {
		if emailOTP, err = a.setEmailOTP(user); err != nil {
			log.Printf("Signup error: %v", err)
			writeMessage(w, http.StatusInternalServerError, MsgServerError)
			return
		}
	}
	if req.Mobile != "" {
		if mobileOTP, err = a.setMobileOTP(user); err != nil {
			log.Printf("Signup error: %v", err)
			writeMessage(w, http.StatusInternalServerError, MsgServerError)
			return
		}
	}

	if err := a.Users.CreateUser(user); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			writeMessage(w, http.StatusConflict, MsgUserExists)
			return
		}
		log.Printf("Signup error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	if emailOTP != "" {
		a.sendEmailOTP(user.Email, emailOTP)
	}
	if mobileOTP != "" {
		a.sendMobileOTP(user.Mobile, mobileOTP)
	}

	token, err := a.Signer.CreateToken(user.ID)
	if err != nil {
		log.Printf("Signup error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  toUserPayload(user),
		"otp": map[string]bool{
			"emailSent":  req.Email != "",
			"mobileSent": req.Mobile != "",
		},
	})
}

// HandleLogin validates credentials and returns a session token. Unknown
// identifier and wrong password answer identically.
func (a *Auth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if a.Users == nil {
		writeMessage(w, http.StatusInternalServerError, "Login not configured")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if (req.Email == "" && req.Mobile == "") || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email/mobile and password required")
		return
	}

	var user *User
	var err error
	if req.Email != "" {
		user, err = a.Users.GetUserByEmail(req.Email)
	} else {
		user, err = a.Users.GetUserByMobile(req.Mobile)
	}
	if err != nil || user.PasswordHash == "" {
		writeMessage(w, http.StatusUnauthorized, MsgInvalidCredentials)
		return
	}

	if !CheckSecret(user.PasswordHash, req.Password) {
		writeMessage(w, http.StatusUnauthorized, MsgInvalidCredentials)
		return
	}

	token, err := a.Signer.CreateToken(user.ID)
	if err != nil {
		log.Printf("Login error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserPayload(user),
	})
}

// HandleSendEmailOTP issues (or reissues) an email verification code.
func (a *Auth) HandleSendEmailOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := a.Users.GetUserByEmail(req.Email)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User with this email not found")
		return
	}

	otp, err := a.setEmailOTP(user)
	if err == nil {
		err = a.Users.SaveUser(user)
	}
	if err != nil {
		log.Printf("Send email OTP error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	a.sendEmailOTP(user.Email, otp)
	writeMessage(w, http.StatusOK, "Email OTP sent")
}

// HandleVerifyEmail consumes a pending email OTP and marks the email
// verified. The code is one-time use.
func (a *Auth) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.OTP == "" {
		writeMessage(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	user, err := a.Users.GetUserByEmail(req.Email)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, MsgExpiredOTP)
		return
	}

	switch verifySecret(user.EmailOTPHash, user.EmailOTPExpiresAt, req.OTP) {
	case nil:
	case errSecretMismatch:
		writeMessage(w, http.StatusBadRequest, MsgInvalidOTP)
		return
	default:
		writeMessage(w, http.StatusBadRequest, MsgExpiredOTP)
		return
	}

	user.IsEmailVerified = true
	user.EmailOTPHash = ""
	user.EmailOTPExpiresAt = nil
	if err := a.Users.SaveUser(user); err != nil {
		log.Printf("Verify email error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeMessage(w, http.StatusOK, "Email verified successfully")
}

// HandleSendMobileOTP issues (or reissues) a mobile verification code.
func (a *Auth) HandleSendMobileOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mobile string `json:"mobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mobile == "" {
		writeMessage(w, http.StatusBadRequest, "Mobile is required")
		return
	}

	user, err := a.Users.GetUserByMobile(req.Mobile)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User with this mobile not found")
		return
	}

	otp, err := a.setMobileOTP(user)
	if err == nil {
		err = a.Users.SaveUser(user)
	}
	if err != nil {
		log.Printf("Send mobile OTP error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	a.sendMobileOTP(user.Mobile, otp)
	writeMessage(w, http.StatusOK, "Mobile OTP sent")
}

// HandleVerifyMobile consumes a pending mobile OTP and marks the mobile
// verified.
func (a *Auth) HandleVerifyMobile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mobile string `json:"mobile"`
		OTP    string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Mobile == "" || req.OTP == "" {
		writeMessage(w, http.StatusBadRequest, "Mobile and OTP are required")
		return
	}

	user, err := a.Users.GetUserByMobile(req.Mobile)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, MsgExpiredOTP)
		return
	}

	switch verifySecret(user.MobileOTPHash, user.MobileOTPExpiresAt, req.OTP) {
	case nil:
	case errSecretMismatch:
		writeMessage(w, http.StatusBadRequest, MsgInvalidOTP)
		return
	default:
		writeMessage(w, http.StatusBadRequest, MsgExpiredOTP)
		return
	}

	user.IsMobileVerified = true
	user.MobileOTPHash = ""
	user.MobileOTPExpiresAt = nil
	if err := a.Users.SaveUser(user); err != nil {
		log.Printf("Verify mobile error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeMessage(w, http.StatusOK, "Mobile verified successfully")
}

// HandleForgotPassword starts a password reset. The response is the same
// whether or not the email exists, so accounts cannot be enumerated; a
// reset secret is only actually issued for known accounts.
func (a *Auth) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := a.Users.GetUserByEmail(req.Email)
	if err != nil {
		writeMessage(w, http.StatusOK, MsgForgotAck)
		return
	}

	rawToken, err := GenerateResetToken()
	if err != nil {
		log.Printf("Forgot password error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}
	hash, expiresAt, err := issueSecret(rawToken, ResetTokenExpiry)
	if err != nil {
		log.Printf("Forgot password error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	user.ResetTokenHash = hash
	user.ResetTokenExpiresAt = expiresAt
	if err := a.Users.SaveUser(user); err != nil {
		log.Printf("Forgot password error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	if a.Notifier != nil {
		resetLink := fmt.Sprintf("%s/reset.html?token=%s&email=%s",
			a.FrontendURL, rawToken, url.QueryEscape(user.Email))
		body := fmt.Sprintf("To reset your password, visit: %s\n\nThis link is valid for %d minutes.",
			resetLink, int(ResetTokenExpiry.Minutes()))
		if err := a.Notifier.SendEmail(user.Email, resetSubject, body); err != nil {
			log.Printf("Error sending reset email: %v", err)
		}
	}

	writeMessage(w, http.StatusOK, MsgForgotAck)
}

// HandleResetPassword completes a password reset with the raw token from
// the email link. The token is consumed on success.
func (a *Auth) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Token == "" || req.NewPassword == "" {
		writeMessage(w, http.StatusBadRequest, "Email, token and new password are required")
		return
	}

	user, err := a.Users.GetUserByEmail(req.Email)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, MsgExpiredResetToken)
		return
	}

	switch verifySecret(user.ResetTokenHash, user.ResetTokenExpiresAt, req.Token) {
	case nil:
	case errSecretMismatch:
		writeMessage(w, http.StatusBadRequest, MsgInvalidResetToken)
		return
	default:
		writeMessage(w, http.StatusBadRequest, MsgExpiredResetToken)
		return
	}

	passwordHash, err := HashSecret(req.NewPassword)
	if err != nil {
		log.Printf("Reset password error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	user.PasswordHash = passwordHash
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	if err := a.Users.SaveUser(user); err != nil {
		log.Printf("Reset password error: %v", err)
		writeMessage(w, http.StatusInternalServerError, MsgServerError)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset successful")
}

// setEmailOTP puts a fresh pending email OTP on the user record and
// returns the raw code for delivery.
func (a *Auth) setEmailOTP(user *User) (string, error) {
	otp, err := GenerateNumericOTP()
	if err != nil {
		return "", err
	}
	hash, expiresAt, err := issueSecret(otp, OTPExpiry)
	if err != nil {
		return "", err
	}
	user.EmailOTPHash = hash
	user.EmailOTPExpiresAt = expiresAt
	return otp, nil
}

// setMobileOTP puts a fresh pending mobile OTP on the user record and
// returns the raw code for delivery.
func (a *Auth) setMobileOTP(user *User) (string, error) {
	otp, err := GenerateNumericOTP()
	if err != nil {
		return "", err
	}
	hash, expiresAt, err := issueSecret(otp, OTPExpiry)
	if err != nil {
		return "", err
	}
	user.MobileOTPHash = hash
	user.MobileOTPExpiresAt = expiresAt
	return otp, nil
}

// sendEmailOTP delivers a raw email code; delivery failures are logged,
// never surfaced, so the pending secret stays usable via resend.
func (a *Auth) sendEmailOTP(email, otp string) {
	if a.Notifier == nil {
		return
	}
	body := fmt.Sprintf("Your verification code is: %s. It is valid for %d minutes.",
		otp, int(OTPExpiry.Minutes()))
	if err := a.Notifier.SendEmail(email, emailOTPSubject, body); err != nil {
		log.Printf("Error sending verification email: %v", err)
	}
}

// sendMobileOTP delivers a raw mobile code.
func (a *Auth) sendMobileOTP(mobile, otp string) {
	if a.Notifier == nil {
		return
	}
	text := fmt.Sprintf("Smart Agriculture: your verification code is %s. Valid for %d minutes.",
		otp, int(OTPExpiry.Minutes()))
	if err := a.Notifier.SendSMS(mobile, text); err != nil {
		log.Printf("Error sending verification SMS: %v", err)
	}
}

func (a *Auth) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return newUUID()
}
