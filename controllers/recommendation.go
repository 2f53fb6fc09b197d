package controllers

import (
	"log/slog"
	"net/http"

	"property-listing-service/models"
	"property-listing-service/services"
)

func RecommendProperty(svc *services.RecommendationService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		var input services.RecommendPropertyInput
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, log, err)
			return
		}

		recommendation, err := svc.Recommend(r.Context(), input, callerID)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "recommendation created successfully",
			Data:    recommendation,
		})
	}
}

func GetRecommendations(svc *services.RecommendationService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		recommendations, err := svc.List(r.Context(), callerID)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "recommendations fetched successfully",
			Data:    recommendations,
		})
	}
}
