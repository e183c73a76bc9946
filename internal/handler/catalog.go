package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/catalog"
)

// CatalogHandler serves the fixed lookup tables. The routes are public and
// cache friendly; responses only change on deploy.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler { return &CatalogHandler{} }

func (h *CatalogHandler) ServiceTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.ServiceTypes})
}

func (h *CatalogHandler) Coordinators(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.Coordinators})
}

func (h *CatalogHandler) TodoTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": catalog.TodoTemplates})
}

// RequiredDocuments lists the documents a report of the given service type
// must carry. Unknown service types get a 404 rather than an empty list so
// callers can tell a typo from a type with no requirements.
func (h *CatalogHandler) RequiredDocuments(c echo.Context) error {
	serviceType := c.Param("service_type")
	docs := catalog.RequiredDocuments(serviceType)
	if docs == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown service type"})
	}
	return c.JSON(http.StatusOK, echo.Map{"service_type": serviceType, "items": docs})
}
