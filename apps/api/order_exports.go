package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/himeshnishant1/juspay-dashboard/libs/mailer"
	"github.com/himeshnishant1/juspay-dashboard/libs/orders"
)

const (
	exportFormatCSV = "csv"
	exportFormatPDF = "pdf"
	exportPDFTitle  = "Order list export"
)

var exportContentTypes = map[string]string{
	exportFormatCSV: "text/csv; charset=utf-8",
	exportFormatPDF: "application/pdf",
}

// exportScope returns the selected orders in view order when anything is selected, otherwise
// the whole filtered and sorted list.
func exportScope(catalog *orders.Catalog, state orders.QueryState, now time.Time) ([]orders.OrderRecord, string) {
	ordered := orders.Apply(catalog.Records(), state, now)
	if state.Selected.Len() == 0 {
		return ordered, exportScopeFiltered
	}

	selected := make([]orders.OrderRecord, 0, state.Selected.Len())
	for _, record := range ordered {
		if state.Selected.Contains(record.ID) {
			selected = append(selected, record)
		}
	}
	return selected, exportScopeSelection
}

func buildOrdersCSV(records []orders.OrderRecord) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	writer := csv.NewWriter(buffer)
	if err := writer.Write([]string{"order_id", "user", "project", "address", "date", "status"}); err != nil {
		return nil, err
	}
	for _, record := range records {
		row := []string{
			record.ID,
			record.User.Name,
			record.Project,
			record.Address,
			record.Date,
			record.Status.Label,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func buildOrdersPDF(records []orders.OrderRecord, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, exportPDFTitle)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total orders: %d", len(records)))
	pdf.Ln(10)

	statusCounts := map[string]int{}
	for _, record := range records {
		statusCounts[record.Status.Label]++
	}
	statusKeys := make([]string, 0, len(statusCounts))
	for key := range statusCounts {
		statusKeys = append(statusKeys, key)
	}
	sort.Slice(statusKeys, func(i, j int) bool {
		if statusCounts[statusKeys[i]] != statusCounts[statusKeys[j]] {
			return statusCounts[statusKeys[i]] > statusCounts[statusKeys[j]]
		}
		return statusKeys[i] < statusKeys[j]
	})

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Status distribution")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, key := range statusKeys {
		pdf.Cell(0, 6, fmt.Sprintf("- %s: %d", key, statusCounts[key]))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	widths := []float64{28, 45, 50, 70, 40, 32}
	headers := []string{"Order ID", "User", "Project", "Address", "Date", "Status"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, record := range records {
		cells := []string{record.ID, record.User.Name, record.Project, record.Address, record.Date, record.Status.Label}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func exportFileName(id, format string) string {
	return fmt.Sprintf("orders-%s.%s", id, format)
}

func writeExportFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// generateOrderExport renders the export, stores the artifact under DATA_ROOT and records it.
func (a *App) generateOrderExport(ctx context.Context, state orders.QueryState, format, emailedTo string) (exportRecord, []byte, error) {
	now := a.now()
	records, scope := exportScope(a.catalog, state, now)

	var (
		data []byte
		err  error
	)
	switch format {
	case exportFormatCSV:
		data, err = buildOrdersCSV(records)
	case exportFormatPDF:
		data, err = buildOrdersPDF(records, now)
	default:
		return exportRecord{}, nil, &apiError{Status: http.StatusBadRequest, Code: "validation_error", Message: "format must be csv or pdf"}
	}
	if err != nil {
		return exportRecord{}, nil, fmt.Errorf("build %s export: %w", format, err)
	}

	id := uuid.NewString()
	record := exportRecord{
		ID:            id,
		Format:        format,
		Scope:         scope,
		RowCount:      len(records),
		FilePath:      filepath.Join(a.cfg.DataRoot, exportsDirName, id+"."+format),
		FileName:      exportFileName(id, format),
		SearchTerm:    state.SearchTerm,
		StatusFilter:  state.StatusFilter,
		ProjectFilter: state.ProjectFilter,
		SortField:     string(state.SortField),
		SortDirection: string(state.SortDirection),
		EmailedTo:     emailedTo,
		CreatedAt:     now,
	}

	writeFile := a.writeExportFile
	if writeFile == nil {
		writeFile = writeExportFileAtomic
	}
	if err := writeFile(record.FilePath, data); err != nil {
		return exportRecord{}, nil, fmt.Errorf("write export artifact: %w", err)
	}
	if err := a.exports.Record(ctx, record); err != nil {
		return exportRecord{}, nil, err
	}

	a.log.Info("order export generated",
		"export_id", record.ID,
		"format", format,
		"scope", scope,
		"rows", record.RowCount,
	)
	return record, data, nil
}

func (a *App) exportDownloadHandler(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := a.currentSession(c)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		record, data, err := a.generateOrderExport(c.Request.Context(), session.Query, format, "")
		if err != nil {
			a.log.Error("order export failed", "format", format, "error", err)
			redirectWithMessage(c, "/orders", "error", pageText(a.languageFromRequest(c), "error_export_failed"))
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", record.FileName))
		c.Data(http.StatusOK, exportContentTypes[format], data)
	}
}

func (a *App) exportEmailSubmitHandler(c *gin.Context) {
	lang := a.languageFromRequest(c)
	session, err := a.currentSession(c)
	if err != nil {
		writeAPIError(c, err)
		return
	}

	recipient := a.cfg.ExportEmailTo
	record, data, err := a.generateOrderExport(c.Request.Context(), session.Query, exportFormatCSV, recipient)
	if err != nil {
		a.log.Error("order export failed", "format", exportFormatCSV, "error", err)
		redirectWithMessage(c, "/orders", "error", pageText(lang, "error_export_failed"))
		return
	}

	_, err = a.mailer.Send(c.Request.Context(), mailer.Message{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Order export (%d orders)", record.RowCount),
		Text:    fmt.Sprintf("Attached are %d orders exported on %s.", record.RowCount, record.CreatedAt.Format("2006-01-02 15:04 MST")),
		Attachments: []mailer.Attachment{{
			Filename:    record.FileName,
			ContentType: exportContentTypes[exportFormatCSV],
			Content:     data,
		}},
	})
	if err != nil {
		a.log.Error("order export email failed", "export_id", record.ID, "error", err)
		redirectWithMessage(c, "/orders", "error", pageText(lang, "error_export_email_failed"))
		return
	}

	redirectWithMessage(c, "/orders", "notice", fmt.Sprintf(pageText(lang, "notice_export_emailed"), record.RowCount, recipient))
}

func (a *App) apiExportsHandler(c *gin.Context) {
	records, err := a.exports.List(c.Request.Context(), exportListLimit)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exports": records, "store": a.exports.Name()})
}
