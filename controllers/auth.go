package controllers

import (
	"log/slog"
	"net/http"

	"property-listing-service/models"
	"property-listing-service/services"
)

func RegisterUser(svc *services.AuthService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.RegisterInput
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, log, err)
			return
		}

		if err := svc.Register(r.Context(), input); err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "user registered successfully",
		})
	}
}

func LoginUser(svc *services.AuthService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.LoginInput
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, log, err)
			return
		}

		token, err := svc.Login(r.Context(), input)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "login successful",
			Data:    map[string]string{"token": token},
		})
	}
}
