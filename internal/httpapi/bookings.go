package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"spacebook/internal/app/bookings"
	"spacebook/internal/catalog"
	"spacebook/internal/store"
)

type bookingRequest struct {
	SpaceID  catalog.SpaceID `json:"spaceId"`
	Date     string          `json:"date"`
	TimeSlot string          `json:"timeSlot"`
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := s.bookings.List(r.Context(), s.userID(r))
	if err != nil {
		if errors.Is(err, bookings.ErrLoginRequired) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "You must log in to view your bookings"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Bookings []store.Booking `json:"bookings"`
	}{Bookings: list})
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	booking, err := s.bookings.Create(r.Context(), s.userID(r), bookings.CreateRequest{
		SpaceID:  req.SpaceID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrLoginRequired):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Please log in to make a booking"})
		case errors.Is(err, bookings.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Please select both date and time slot"})
		case errors.Is(err, bookings.ErrPastDate):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Cannot book for past dates"})
		case errors.Is(err, bookings.ErrTooFarAhead):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Cannot book more than 3 months ahead"})
		case errors.Is(err, bookings.ErrInvalidDate), errors.Is(err, bookings.ErrUnknownSlot):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, catalog.ErrSpaceNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Space not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	if err := s.bookings.Cancel(r.Context(), s.userID(r), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrLoginRequired):
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "You must log in to view your bookings"})
		case errors.Is(err, bookings.ErrBookingNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Booking not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
