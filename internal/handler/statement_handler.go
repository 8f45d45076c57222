package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/middleware"
	"github.com/oseko/lendbook-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// StatementHandler handles statement export HTTP requests
type StatementHandler struct {
	statementService *service.StatementService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *service.StatementService) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// StatementExportResponse represents a finished statement export
type StatementExportResponse struct {
	ObjectPath       string `json:"objectPath"`
	DownloadURL      string `json:"downloadUrl"`
	TransactionCount int    `json:"transactionCount"`
	ExpiresAt        string `json:"expiresAt"`
}

// ExportMonth handles POST /statements/:year/:month
func (h *StatementHandler) ExportMonth(c echo.Context) error {
	ownerID := middleware.GetOwnerID(c)
	if ownerID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	year, month, err := parsePeriodParams(c, true)
	if err != nil {
		return NewValidationError(c, "Invalid period", nil)
	}

	export, err := h.statementService.ExportMonth(c.Request().Context(), ownerID, year, month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Int32("owner_id", ownerID).Int("year", year).Int("month", month).Msg("Failed to export statement")
		return NewInternalError(c, "Failed to export statement")
	}

	log.Info().
		Int32("owner_id", ownerID).
		Str("object_path", export.ObjectPath).
		Int("transactions", export.TransactionCount).
		Msg("Statement exported")

	return c.JSON(http.StatusOK, StatementExportResponse{
		ObjectPath:       export.ObjectPath,
		DownloadURL:      export.DownloadURL,
		TransactionCount: export.TransactionCount,
		ExpiresAt:        export.ExpiresAt.Format(time.RFC3339),
	})
}
