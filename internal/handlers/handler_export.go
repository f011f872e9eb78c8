package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/middleware"
	"github.com/freelanceflow/ff_backend/internal/store"
	"github.com/gin-gonic/gin"
)

// exportHandler serves downloadable CSV and PDF documents rendered from
// the session snapshot.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
	stores        *store.Manager
}

// registerExportRoutes registers the export download routes.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade, stores *store.Manager) {
	h := &exportHandler{exportService: exportService, stores: stores}

	exports := rg.Group("/exports")
	{
		exports.GET("/clients.csv", h.exportClients)
		exports.GET("/projects.csv", h.exportProjects)
		exports.GET("/invoices.csv", h.exportInvoices)
		exports.GET("/summary.csv", h.exportSummary)
		exports.GET("/invoices/:id/pdf", h.exportInvoicePDF)
	}
}

// serveCSV runs one of the CSV export operations over the session
// snapshot and streams the result as an attachment.
func (h *exportHandler) serveCSV(c *gin.Context, op func(ctx context.Context, s *store.Store) ([]byte, string, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	s, _, ok := session(c, h.stores)
	if !ok {
		return
	}

	data, filename, err := op(c.Request.Context(), s)
	if err != nil {
		logger.Error("CSV export failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate export"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// exportClients godoc
// @Summary Export clients as CSV
// @Tags exports
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/clients.csv [get]
func (h *exportHandler) exportClients(c *gin.Context) {
	h.serveCSV(c, func(ctx context.Context, s *store.Store) ([]byte, string, error) {
		return h.exportService.ExportClientsCSV(ctx, s.Clients())
	})
}

// exportProjects godoc
// @Summary Export projects as CSV
// @Tags exports
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/projects.csv [get]
func (h *exportHandler) exportProjects(c *gin.Context) {
	h.serveCSV(c, func(ctx context.Context, s *store.Store) ([]byte, string, error) {
		return h.exportService.ExportProjectsCSV(ctx, s.Projects(), s.Clients())
	})
}

// exportInvoices godoc
// @Summary Export invoices as CSV
// @Tags exports
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/invoices.csv [get]
func (h *exportHandler) exportInvoices(c *gin.Context) {
	h.serveCSV(c, func(ctx context.Context, s *store.Store) ([]byte, string, error) {
		return h.exportService.ExportInvoicesCSV(ctx, s.Invoices(), s.Clients())
	})
}

// exportSummary godoc
// @Summary Export the financial summary as CSV
// @Tags exports
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/summary.csv [get]
func (h *exportHandler) exportSummary(c *gin.Context) {
	h.serveCSV(c, func(ctx context.Context, s *store.Store) ([]byte, string, error) {
		return h.exportService.ExportSummaryCSV(ctx, s.Invoices(), s.Clients())
	})
}

// exportInvoicePDF godoc
// @Summary Export one invoice as PDF
// @Tags exports
// @Produce application/pdf
// @Param   id path string true "Invoice ID"
// @Success 200 {string} string "PDF content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exports/invoices/{id}/pdf [get]
func (h *exportHandler) exportInvoicePDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	s, userID, ok := session(c, h.stores)
	if !ok {
		return
	}

	invoice, found := s.Invoice(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
		return
	}

	// A dangling client reference degrades to the N/A placeholder.
	var client domain.Client
	if invoice.ClientID != "" {
		if cached, ok := s.Client(invoice.ClientID); ok {
			client = *cached
		}
	}

	data, filename, err := h.exportService.ExportInvoicePDF(c.Request.Context(), userID, *invoice, client)
	if err != nil {
		logger.Error("PDF export failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
