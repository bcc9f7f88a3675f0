package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-calendar/internal/domain/holiday"
	"github.com/cmlabs-hris/leave-calendar/internal/domain/leave"
	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayService holiday.HolidayService
	now            func() time.Time
}

func NewHolidayHandler(holidayService holiday.HolidayService) HolidayHandler {
	return &HolidayHandlerImpl{
		holidayService: holidayService,
		now:            time.Now,
	}
}

// List implements HolidayHandler. It accepts either from/to dates or
// year/month, defaulting to the current month.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("from") || query.Has("to") {
		from, fromErr := leave.ParseDate(query.Get("from"))
		to, toErr := leave.ParseDate(query.Get("to"))
		if fromErr != nil || toErr != nil {
			response.HandleError(w, validator.ValidationErrors{{
				Field:   "from",
				Message: "from and to must be in YYYY-MM-DD format",
			}})
			return
		}

		holidays, err := h.holidayService.List(r.Context(), holiday.ListHolidaysRequest{
			From:    from,
			To:      to,
			Country: query.Get("country"),
		})
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, holidays)
		return
	}

	now := h.now()
	year, err := getIntQueryParam(r, "year", now.Year())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, err := getIntQueryParam(r, "month", int(now.Month()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if month < 1 || month > 12 {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be between 1 and 12",
		}})
		return
	}

	holidays, err := h.holidayService.ListForMonth(r.Context(), year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidays)
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.holidayService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", created)
}

// Delete implements HolidayHandler.
func (h *HolidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Holiday ID must be a UUID", nil)
		return
	}

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}
