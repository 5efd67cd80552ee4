package diagnostics

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medtrack/emr/internal/platform/auth"
	"github.com/medtrack/emr/internal/platform/validate"
	"github.com/medtrack/emr/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/labs", h.List)
	api.GET("/labs/:id", h.Get)

	write := api.Group("", auth.RequireRole("Doctor"))
	write.POST("/labs", h.Create)
	write.PUT("/labs/:id", h.Update)
	write.DELETE("/labs/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var lr LabReport
	if err := c.Bind(&lr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &lr); err != nil {
		if fields, ok := validate.AsErrors(err); ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": fields})
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, lr)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	lr, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab report not found")
	}
	return c.JSON(http.StatusOK, lr)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	for _, key := range []string{"patient_id", "provider_id", "status", "category"} {
		if val := c.QueryParam(key); val != "" {
			params[key] = val
		}
	}
	items, total, err := h.svc.Search(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	lr, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab report not found")
	}
	if err := c.Bind(lr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	lr.ID = id
	if err := h.svc.Update(c.Request().Context(), lr); err != nil {
		if fields, ok := validate.AsErrors(err); ok {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": fields})
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, lr)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "lab report not found")
	}
	return c.NoContent(http.StatusNoContent)
}
