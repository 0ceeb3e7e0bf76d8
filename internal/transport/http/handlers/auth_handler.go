package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vkaran/murmur/internal/service"
	"github.com/vkaran/murmur/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var input service.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateSignUp(input.Email, input.Username, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	_, err := h.authService.SignUp(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email is already registered")
		case errors.Is(err, service.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "Username is already taken")
		default:
			log.Printf("ERROR sign-up: %v", err)
			writeError(w, http.StatusInternalServerError, "Error registering user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User registered successfully. Please check your email for the verification code.",
	})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var input service.VerifyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateVerifyCode(input.Username, input.Code); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if err := h.authService.Verify(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCode):
			writeError(w, http.StatusBadRequest, "Invalid verification code")
		case errors.Is(err, service.ErrCodeExpired):
			writeError(w, http.StatusBadRequest, "Verification code has expired")
		default:
			log.Printf("ERROR verify: %v", err)
			writeError(w, http.StatusInternalServerError, "Error during user verification")
		}
		return
	}

	writeMessage(w, http.StatusOK, "User verified successfully")
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var input service.SignInInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateSignIn(input.Identifier, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.SignIn(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCreds):
			writeError(w, http.StatusUnauthorized, "Invalid email/username or password")
		case errors.Is(err, service.ErrNotVerified):
			writeError(w, http.StatusForbidden, "Please verify your account before signing in")
		default:
			log.Printf("ERROR sign-in: %v", err)
			writeError(w, http.StatusInternalServerError, "Error signing in")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   resp.Token,
		"user":    resp.User,
	})
}
