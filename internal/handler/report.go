package handler

import (
	"fmt"
	"html"
	"net/http"

	"github.com/templui/goaltracker/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
	appName       string
}

func NewReportHandler(reportService *service.ReportService, appName string) *ReportHandler {
	return &ReportHandler{reportService: reportService, appName: appName}
}

const reportPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
`

// HTML renders the summary report as a standalone page.
func (h *ReportHandler) HTML(w http.ResponseWriter, r *http.Request) {
	body, err := h.reportService.HTML()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, reportPage, html.EscapeString(h.appName))
	_, _ = w.Write(body)
	_, _ = w.Write([]byte("</body>\n</html>\n"))
}

func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	export, err := h.reportService.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, export)
}
