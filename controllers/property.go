package controllers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
	"property-listing-service/services"
	"property-listing-service/store"
)

func CreateProperty(svc *services.PropertyService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		var input services.CreatePropertyInput
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, log, err)
			return
		}

		property, err := svc.Create(r.Context(), input, callerID)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "property created successfully",
			Data:    property,
		})
	}
}

func GetProperties(svc *services.PropertyService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r.URL.Query(), "page", 1)
		limit := queryInt(r.URL.Query(), "limit", services.DefaultPageSize)

		result, err := svc.List(r.Context(), page, limit)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "properties fetched successfully",
			Data:    result,
		})
	}
}

func SearchProperties(svc *services.PropertyService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parsePropertyFilter(r.URL.Query())
		if err != nil {
			writeError(w, log, err)
			return
		}

		properties, err := svc.Search(r.Context(), filter)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "properties fetched successfully",
			Data:    properties,
		})
	}
}

func GetProperty(svc *services.PropertyService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		property, err := svc.Get(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "property fetched successfully",
			Data:    property,
		})
	}
}

func UpdateProperty(svc *services.PropertyService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		var input services.UpdatePropertyInput
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, log, err)
			return
		}

		property, err := svc.Update(r.Context(), mux.Vars(r)["id"], callerID, input)
		if err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "property updated successfully",
			Data:    property,
		})
	}
}

func DeleteProperty(svc *services.PropertyService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := CallerID(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		if err := svc.Delete(r.Context(), mux.Vars(r)["id"], callerID); err != nil {
			writeError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "property deleted successfully",
		})
	}
}

func queryInt(q url.Values, name string, fallback int) int {
	raw := q.Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func parsePropertyFilter(q url.Values) (store.PropertyFilter, error) {
	var f store.PropertyFilter
	f.City = q.Get("city")
	f.State = q.Get("state")
	f.Country = q.Get("country")
	f.Type = q.Get("type")
	f.Status = q.Get("status")

	var err error
	if f.MinPrice, err = queryFloat(q, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryFloat(q, "maxPrice"); err != nil {
		return f, err
	}
	if f.Bathrooms, err = queryFloat(q, "bathrooms"); err != nil {
		return f, err
	}
	if f.MinArea, err = queryFloat(q, "minArea"); err != nil {
		return f, err
	}
	if f.MaxArea, err = queryFloat(q, "maxArea"); err != nil {
		return f, err
	}

	if raw := q.Get("bedrooms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return f, domainerrors.Validation("bedrooms must be an integer")
		}
		f.Bedrooms = &n
	}
	return f, nil
}

func queryFloat(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domainerrors.Validation(name + " must be a number")
	}
	return &v, nil
}
