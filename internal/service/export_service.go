package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

const exportSheet = "Claims"

var exportHeaders = []string{
	"Claim Number", "Status", "Claimant", "Email", "Phone", "Policy Number",
	"Vehicle Plate", "Vehicle Make", "Vehicle Model", "Accident Time", "Submitted At",
	"Description", "Admin Notes", "Front Photo", "Rear Photo", "Left Photo", "Right Photo",
}

type exportService struct {
	repo   ClaimRepository
	logger *slog.Logger
}

func NewExportService(repo ClaimRepository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ExportClaims writes the filtered claim list as an XLSX workbook and
// returns the number of claim rows.
func (s *exportService) ExportClaims(ctx context.Context, req domain.ListClaimsRequest, w io.Writer) (int, error) {
	filter, ok := domain.ParseStatusFilter(req.Status)
	if !ok {
		return 0, fmt.Errorf("status filter %q: %w", req.Status, e.ErrInvalidStatus)
	}

	claims, err := listClaims(ctx, s.repo, filter, req.Query)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return 0, fmt.Errorf("failed to set header: %w", err)
	}

	for i, c := range claims {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		row := exportRow(c)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return 0, fmt.Errorf("failed to set row %d: %w", i+2, err)
		}
	}

	last, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetColWidth(exportSheet, "A", last, 20); err != nil {
		return 0, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(exportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		s.logger.Warn("freeze header row failed", slog.Any("error", err))
	}

	if err := f.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("claims exported", slog.String("status", filter.String()), slog.Int("rows", len(claims)))
	return len(claims), nil
}

func exportRow(c *domain.Claim) []any {
	return []any{
		c.ClaimNumber,
		strings.ToUpper(string(c.Status)),
		c.UserName,
		c.ContactEmail,
		c.ContactPhone,
		c.PolicyNumber,
		c.VehiclePlate,
		c.VehicleMake,
		c.VehicleModel,
		c.AccidentDatetime.UTC().Format(time.RFC3339),
		c.SubmissionDatetime.UTC().Format(time.RFC3339),
		c.AccidentDescription,
		c.AdminNotes,
		c.Photos.Front,
		c.Photos.Rear,
		c.Photos.Left,
		c.Photos.Right,
	}
}
