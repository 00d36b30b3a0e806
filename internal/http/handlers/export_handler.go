// README: Itinerary export handlers (ICS calendar, PDF).
package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/export"
	"voyage/internal/modules/itinerary"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Calendar handles POST /api/itinerary/export/ics.
func (h *ExportHandler) Calendar(c *gin.Context) {
	it, ok := bindItinerary(c)
	if !ok {
		return
	}
	body, err := export.Calendar(it)
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	attach(c, export.Filename(it.TripName, "ics"))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// PDF handles POST /api/itinerary/export/pdf.
func (h *ExportHandler) PDF(c *gin.Context) {
	it, ok := bindItinerary(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if _, err := export.WritePDF(&buf, it); err != nil {
		logf(c, "export pdf: %v", err)
		writeError(c, http.StatusInternalServerError, "pdf export failed")
		return
	}
	attach(c, export.Filename(it.TripName, "pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func bindItinerary(c *gin.Context) (*itinerary.Itinerary, bool) {
	if !allowMethods(c, http.MethodPost) {
		return nil, false
	}
	var it itinerary.Itinerary
	if !bindJSON(c, &it) {
		return nil, false
	}
	return &it, true
}

func attach(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}
