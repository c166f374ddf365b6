package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// ExportFormat selects the encoding of GET /export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportYAML ExportFormat = "yaml"
	ExportTOML ExportFormat = "toml"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_destination", "trip_start_date", "trip_end_date", "trip_budget",
	"card_id", "card_type", "card_title", "card_cost", "location",
	"position_x", "position_y", "connections",
}

// tomlDocument wraps the rows because a TOML document cannot be a bare array.
type tomlDocument struct {
	Rows []domain.ExportRow `toml:"rows"`
}

// GetExport handles GET /export.
// It returns one row per card across all trips; trips without cards yield
// one row. ?format= selects json (default), csv, yaml or toml.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *ExportFormat
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid format for parameter format: %v", errBadRequest, err))
		return
	}
	f := ExportJSON
	if format != nil {
		f = *format
	}

	rows := nonNil(s.planner.Export(r.Context()))
	body, contentType, err := EncodeExport(rows, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	if f != ExportJSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tripcanvas-export.%s"`, f))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// EncodeExport renders rows in format f and returns the bytes with their
// content type. An unknown format is a validation error.
func EncodeExport(rows []domain.ExportRow, f ExportFormat) ([]byte, string, error) {
	switch f {
	case ExportJSON:
		b, err := json.Marshal(rows)
		return b, "application/json", err
	case ExportCSV:
		return encodeCSV(rows), "text/csv", nil
	case ExportYAML:
		b, err := yaml.Marshal(rows)
		return b, "application/yaml", err
	case ExportTOML:
		b, err := toml.Marshal(tomlDocument{Rows: rows})
		return b, "application/toml", err
	}
	return nil, "", fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, f)
}

// encodeCSV encodes rows with a header line.
// Connections within a row are pipe-separated ("|") to keep each card on a single CSV line.
func encodeCSV(rows []domain.ExportRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(csvRecord(r))
	}
	w.Flush()
	return buf.Bytes()
}

// csvRecord encodes a domain.ExportRow as a flat string slice.
// Nil amounts are encoded as empty strings.
func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.TripDestination,
		r.TripStartDate,
		r.TripEndDate,
		formatOptionalAmount(r.TripBudget),
		r.CardID,
		r.CardType,
		r.CardTitle,
		formatOptionalAmount(r.CardCost),
		r.Location,
		strconv.FormatFloat(r.PositionX, 'f', -1, 64),
		strconv.FormatFloat(r.PositionY, 'f', -1, 64),
		strings.Join(r.Connections, "|"),
	}
}

// formatOptionalAmount returns the shortest decimal form of v, or "" if v is nil.
func formatOptionalAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
