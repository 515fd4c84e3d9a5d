package main

import (
	"errors"
	"net/http"

	"bgmsons/internal/store"
)

type loginPayload struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

type updateCredentialsPayload struct {
	CurrentUsername string `json:"currentUsername" validate:"required,max=100"`
	CurrentPassword string `json:"currentPassword" validate:"required,max=72"`
	NewUsername     string `json:"newUsername" validate:"required,max=100"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type adminResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

func (app *application) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	invalid := func() {
		app.logger.Warnw("failed admin login", "username", payload.Username, "remote", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, adminResponse{
			Success: false,
			Message: "Invalid admin credentials",
		})
	}

	admin, err := app.store.Admins.GetByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			invalid()
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := admin.Password.Compare(payload.Password); err != nil {
		invalid()
		return
	}

	token, err := app.authenticator.GenerateToken(admin.Username)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("admin logged in", "username", admin.Username)

	writeJSON(w, http.StatusOK, adminResponse{
		Success: true,
		Message: "Admin login successful",
		Token:   token,
	})
}

func (app *application) adminSignupHandler(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	admin := &store.Admin{Username: payload.Username}
	if err := admin.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Admins.Create(r.Context(), admin); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			writeJSON(w, http.StatusBadRequest, adminResponse{
				Success: false,
				Message: "Admin with this username already exists",
			})
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("admin created", "username", admin.Username)

	writeJSON(w, http.StatusOK, adminResponse{
		Success: true,
		Message: "Admin created successfully",
	})
}

func (app *application) adminUpdateHandler(w http.ResponseWriter, r *http.Request) {
	var payload updateCredentialsPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	invalid := func() {
		writeJSON(w, http.StatusUnauthorized, adminResponse{
			Success: false,
			Message: "Invalid current admin credentials",
		})
	}

	admin, err := app.store.Admins.GetByUsername(r.Context(), payload.CurrentUsername)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			invalid()
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := admin.Password.Compare(payload.CurrentPassword); err != nil {
		invalid()
		return
	}

	var next store.Admin
	if err := next.Password.Set(payload.NewPassword); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	err = app.store.Admins.UpdateCredentials(r.Context(),
		payload.CurrentUsername, payload.NewUsername, next.Password.Hash())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("admin credentials rotated", "username", payload.NewUsername)

	writeJSON(w, http.StatusOK, adminResponse{
		Success: true,
		Message: "Admin credentials updated successfully",
	})
}

// adminVerifyHandler is the probe the admin console's route guard
// calls before rendering protected views.
func (app *application) adminVerifyHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := app.bearerUsername(r); err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, adminResponse{
		Success: true,
		Message: "Token is valid",
	})
}
