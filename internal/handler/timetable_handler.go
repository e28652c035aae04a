package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/crossfit-rzeszow/timetable-api/internal/response"
	"github.com/crossfit-rzeszow/timetable-api/internal/scraper"
	"github.com/crossfit-rzeszow/timetable-api/internal/service"
	"github.com/crossfit-rzeszow/timetable-api/internal/validator"
)

// TimetableHandler serves the timetable both as JSON and as an iCalendar
// feed backed by the gym's schedule page.
type TimetableHandler struct {
	timetableService *service.TimetableService
	log              zerolog.Logger
}

// NewTimetableHandler creates a new TimetableHandler.
func NewTimetableHandler(timetableService *service.TimetableService, log zerolog.Logger) *TimetableHandler {
	return &TimetableHandler{
		timetableService: timetableService,
		log:              log.With().Str("component", "timetable_handler").Logger(),
	}
}

// TimetableQuery is the shared query payload for both timetable endpoints.
// Start, when given, must be a Monday no older than two weeks; it defaults
// to the Monday of the current week.
type TimetableQuery struct {
	Weeks int    `form:"weeks,default=1" binding:"omitempty,min=1,max=6"`
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
}

func (q *TimetableQuery) startDate() *time.Time {
	if q.Start == "" {
		return nil
	}
	// Format already validated by the binding.
	d, _ := time.Parse("2006-01-02", q.Start)
	return &d
}

// GetTimetable godoc
// GET /timetable
// Returns the scheduled classes for the requested weeks as JSON.
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	var q TimetableQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	records, err := h.timetableService.GetTimetable(c.Request.Context(), q.Weeks, q.startDate())
	if err != nil {
		h.failFetch(c, err)
		return
	}
	if len(records) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": records})
}

// GetCalendar godoc
// GET /timetable.ical
// Returns the scheduled classes as a downloadable iCalendar file.
func (h *TimetableHandler) GetCalendar(c *gin.Context) {
	var q TimetableQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	body, err := h.timetableService.GenerateCalendar(c.Request.Context(), q.Weeks, q.startDate())
	if err != nil {
		h.failFetch(c, err)
		return
	}
	if len(body) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	c.Header("Content-Disposition", `attachment; filename=crossfit_timetable.ics`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// failFetch maps scraping failures to API error responses.
func (h *TimetableHandler) failFetch(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scraper.ErrNotMonday):
		response.Fail(c, http.StatusBadRequest, response.ErrNotMonday)
	case errors.Is(err, scraper.ErrTooOld):
		response.Fail(c, http.StatusBadRequest, response.ErrDateTooOld)
	case errors.Is(err, scraper.ErrMissingTable):
		h.log.Error().Err(err).Msg("Schedule table missing from upstream page")
		response.Fail(c, http.StatusInternalServerError, response.ErrScheduleUnavailable)
	default:
		h.log.Error().Err(err).Msg("Upstream fetch failed")
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
	}
}
