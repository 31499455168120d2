package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"luxeshop/database/store"
	"luxeshop/middleware"
	"luxeshop/model"
	"luxeshop/utils"
)

type UserStore interface {
	CreateUser(u model.User) (int64, error)
	GetUserByID(id int64) (model.User, error)
	GetUserByEmail(email string) (model.User, error)
	FindByEmailOrUsername(email, username string) (model.User, error)
	UpdateProfile(id int64, upd model.ProfileUpdate) error
	UpdatePassword(id int64, passwordHash string) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, role model.Role) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthHandler struct {
	users    UserStore
	tokens   TokenIssuer
	hasher   PasswordHasher
	validate *validator.Validate
}

func NewAuthHandler(users UserStore, tokens TokenIssuer, hasher PasswordHasher) *AuthHandler {
	return &AuthHandler{
		users:    users,
		tokens:   tokens,
		hasher:   hasher,
		validate: validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body model.RegisterRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	existing, err := h.users.FindByEmailOrUsername(body.Email, body.Username)
	if err == nil {
		if existing.Email == body.Email {
			utils.RespondError(w, http.StatusBadRequest, nil, "User with this email already exists")
		} else {
			utils.RespondError(w, http.StatusBadRequest, nil, "Username is already taken")
		}
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to check user existence")
		return
	}

	passwordHash, err := h.hasher.Hash(body.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to secure password")
		return
	}

	user := model.User{
		Username:  body.Username,
		Email:     body.Email,
		Password:  passwordHash,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Address:   body.Address,
		Role:      model.RoleCustomer,
	}
	userID, err := h.users.CreateUser(user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondError(w, http.StatusBadRequest, nil, "User already exists")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to create user")
		return
	}

	token, err := h.tokens.GenerateToken(userID, model.RoleCustomer)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to generate token")
		return
	}

	user.ID = userID
	utils.RespondJSON(w, http.StatusCreated, "Account created successfully! Welcome to LuxeShop!", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body model.LoginRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	user, err := h.users.GetUserByEmail(body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusUnauthorized, nil, "Invalid credentials")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to look up user")
		return
	}
	if err := h.hasher.Compare(user.Password, body.Password); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to generate token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "", user)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}

	var upd model.ProfileUpdate
	if err := utils.ParseBody(r.Body, &upd); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}

	if err := h.users.UpdateProfile(user.ID, upd); err != nil {
		if errors.Is(err, store.ErrNoFields) {
			utils.RespondError(w, http.StatusBadRequest, nil, "No valid fields to update")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update profile")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Profile updated successfully", nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, nil, "Access token required")
		return
	}

	var body model.ChangePasswordRequest
	if err := utils.ParseBody(r.Body, &body); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to parse request body")
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.RespondValidationError(w, err)
		return
	}

	if err := h.hasher.Compare(user.Password, body.CurrentPassword); err != nil {
		utils.RespondError(w, http.StatusBadRequest, nil, "Current password is incorrect")
		return
	}

	passwordHash, err := h.hasher.Hash(body.NewPassword)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to secure password")
		return
	}
	if err := h.users.UpdatePassword(user.ID, passwordHash); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to change password")
		return
	}
	utils.RespondJSON(w, http.StatusOK, "Password changed successfully", nil)
}
