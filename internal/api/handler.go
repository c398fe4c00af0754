package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/dipulse/dipulse/internal/curve"
	"github.com/dipulse/dipulse/internal/domain/dto"
	"github.com/dipulse/dipulse/internal/service"
)

const dateLayout = "2006-01-02"

// Handler provides HTTP handlers for the DI1 curve endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Invoke the curve service
//   - Translate pipeline results and errors into response DTOs
type Handler struct {
	svc            service.CurveService
	refreshSeconds int
}

// NewHandler constructs a new Handler instance. refreshSeconds is the refresh
// cadence hint attached to live panels.
func NewHandler(svc service.CurveService, refreshSeconds int) *Handler {
	return &Handler{svc: svc, refreshSeconds: refreshSeconds}
}

// GetPanel handles GET /api/v1/panel requests.
//
// Query Parameters:
//   - data_inicio (string, optional): Start date in YYYY-MM-DD. Defaults to
//     the business day before the final date.
//   - data_fim (string, optional): Final date in YYYY-MM-DD. Defaults to the
//     most recent business day.
//
// GetPanel godoc
// @Summary      Get DI1 curve panel
// @Description  Returns the basis-point variation per issuance vertex and both yield curves between two business days
// @Tags         curve
// @Accept       json
// @Produce      json
// @Param        data_inicio  query     string  false  "Start date in YYYY-MM-DD" example(2026-08-27)
// @Param        data_fim     query     string  false  "Final date in YYYY-MM-DD" example(2026-08-28)
// @Success      200          {object}  dto.PanelResponse      "Success"
// @Failure      400          {object}  dto.ErrorResponse      "Bad Request"
// @Failure      502          {object}  dto.ErrorResponse      "Upstream data malformed"
// @Failure      500          {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/panel [get]
func (h *Handler) GetPanel(c *gin.Context) {
	finalDate := time.Now()
	if s := c.Query("data_fim"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid data_fim format, expected YYYY-MM-DD", err))
			return
		}
		finalDate = parsed
	}

	// Default start is one business day before the final date; the service
	// rolls both onto business days, so passing final-1d is enough here.
	startDate := finalDate.AddDate(0, 0, -1)
	if s := c.Query("data_inicio"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid data_inicio format, expected YYYY-MM-DD", err))
			return
		}
		startDate = parsed
	}

	panel, err := h.svc.Panel(c.Request.Context(), startDate, finalDate)
	if err != nil {
		status, msg := classify(err)
		c.JSON(status, dto.NewErrorResponse(msg, err))
		return
	}

	c.JSON(http.StatusOK, dto.NewPanelResponse(panel, h.refreshSeconds))
}

// GetCurve handles GET /api/v1/curve requests.
//
// GetCurve godoc
// @Summary      Get a single yield curve
// @Description  Returns the normalized DI1 yield curve for one business day
// @Tags         curve
// @Accept       json
// @Produce      json
// @Param        data  query     string  false  "Reference date in YYYY-MM-DD" example(2026-08-28)
// @Success      200   {object}  dto.CurveResponse      "Success"
// @Failure      400   {object}  dto.ErrorResponse      "Bad Request"
// @Failure      502   {object}  dto.ErrorResponse      "Upstream data malformed"
// @Failure      500   {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/curve [get]
func (h *Handler) GetCurve(c *gin.Context) {
	referenceDate := time.Now()
	if s := c.Query("data"); s != "" {
		parsed, err := time.Parse(dateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid data format, expected YYYY-MM-DD", err))
			return
		}
		referenceDate = parsed
	}

	table, date, err := h.svc.Curve(c.Request.Context(), referenceDate)
	if err != nil {
		status, msg := classify(err)
		c.JSON(status, dto.NewErrorResponse(msg, err))
		return
	}

	c.JSON(http.StatusOK, dto.NewCurveResponse(date.Format(dateLayout), table))
}

// classify maps pipeline errors onto HTTP statuses. Malformed upstream data
// (schema violations, duplicate vertices, mixed units) is the gateway's
// fault, not ours.
func classify(err error) (int, string) {
	var schemaErr *curve.SchemaError
	var dupErr *curve.DuplicateMaturityError
	var unitErr *curve.UnitMismatchError
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &dupErr), errors.As(err, &unitErr):
		return http.StatusBadGateway, "upstream rate data malformed"
	default:
		return http.StatusInternalServerError, "failed to build curve data"
	}
}
