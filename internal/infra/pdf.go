package infra

// pdf.go — Roster PDF export using go-pdf/fpdf.
// Generates an A4 table of the admin's field agents and their assigned
// geofences (latitude/longitude center, radius in meters). Agents without a
// position show a dash. The output file is saved to storagePath.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
)

// RosterEntry is one row of the export: an agent and, when assigned, its
// geofence. HasPosition distinguishes "no geofence" from coordinates at 0.
type RosterEntry struct {
	Username    string
	Email       string
	HasPosition bool
	Latitude    float64
	Longitude   float64
	Radius      float64
}

// GenerateRosterPDF writes the roster for adminName to storagePath (created
// if needed) and returns the absolute path of the generated file.
func GenerateRosterPDF(adminName string, entries []RosterEntry, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("roster_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Field Agent Roster", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Admin: %s", adminName), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 6, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.22 // username
	col2 := contentW * 0.32 // email
	col3 := contentW * 0.16 // latitude
	col4 := contentW * 0.16 // longitude
	col5 := contentW * 0.14 // radius

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Agent", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Email", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Latitude", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Longitude", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Radius (m)", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		lat, lon, radius := "-", "-", "-"
		if e.HasPosition {
			lat = fmt.Sprintf("%.5f", e.Latitude)
			lon = fmt.Sprintf("%.5f", e.Longitude)
			radius = fmt.Sprintf("%.0f", e.Radius)
		}
		pdf.CellFormat(col1, 6, e.Username, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, e.Email, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, lat, "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, lon, "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, radius, "", 1, "R", false, 0, "")
	}

	if len(entries) == 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "No agents provisioned.", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
