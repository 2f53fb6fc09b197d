package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"property-listing-service/models"
	"property-listing-service/services"
)

func AddFavourite(svc *services.FavouriteService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		var input services.AddFavouriteInput
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, log, err)
			return
		}

		favourite, err := svc.Add(r.Context(), input, callerID)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "property added to favourites",
			Data:    favourite,
		})
	}
}

func GetFavourites(svc *services.FavouriteService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		favourites, err := svc.List(r.Context(), callerID)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "favourites fetched successfully",
			Data:    favourites,
		})
	}
}

func DeleteFavourite(svc *services.FavouriteService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		if err := svc.Remove(r.Context(), callerID, mux.Vars(r)["propertyId"]); err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "property removed from favourites",
		})
	}
}
