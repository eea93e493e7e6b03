package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hiremeplz/hiremeplz/internal/types"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users     *UserService
	jwt       *JWTService
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users *UserService, jwt *JWTService) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwt:       jwt,
		validator: validator.New(),
	}
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, asValidationError(err))
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, asValidationError(err))
		return
	}

	user, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *types.User) {
	token, err := h.jwt.GenerateToken(types.AuthContext{
		UserID: user.ID,
		TeamID: user.TeamID,
		Role:   user.Role,
	})
	if err != nil {
		writeErrorStatus(w, http.StatusInternalServerError, "internal_error", "failed to generate token")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.AuthResponse{User: user, Token: token})
}

// asValidationError converts validator output to the typed API error,
// keeping the first field failure for the response detail.
func asValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &ErrValidation{Field: errs[0].Field(), Message: errs[0].Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid"}
}
