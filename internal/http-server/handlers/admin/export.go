package admin

import (
	"EnrollHub/impl/core"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Registrations"

var exportHeader = []interface{}{
	"Registered At", "Full Name", "Email", "Phone", "Date of Birth", "Gender", "Address",
	"School Level", "Program", "Courses", "Total", "Proof Type", "Proof", "Payment Verified", "Admin Note",
}

// ExportRegistrations sends all registrations as an Excel workbook.
func ExportRegistrations(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		if _, err := handler.RefreshDashboard(r.Context()); err != nil {
			logger.Error("failed to fetch registrations", sl.Err(err))
			http.Error(w, "Failed to fetch registrations", http.StatusInternalServerError)
			return
		}
		view, err := handler.Dashboard(r.Context(), i18n.FromContext(r.Context()))
		if err != nil {
			logger.Error("failed to fetch registrations", sl.Err(err))
			http.Error(w, "Failed to fetch registrations", http.StatusInternalServerError)
			return
		}

		f, err := workbook(view)
		if err != nil {
			logger.Error("failed to build excel file", sl.Err(err))
			http.Error(w, "Failed to generate Excel", http.StatusInternalServerError)
			return
		}
		defer func() { _ = f.Close() }()

		filename := fmt.Sprintf("registrations_%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.WriteHeader(http.StatusOK)
		if err = f.Write(w); err != nil {
			logger.Error("failed to write excel file", sl.Err(err))
			return
		}

		logger.Info("registrations exported", slog.Int("count", len(view.Registrations)))
	}
}

func workbook(view *core.DashboardView) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	if err = f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, reg := range view.Registrations {
		program := reg.Selection.ProgramID
		if pc, ok := view.Stats.Programs[program]; ok && pc.Label != "" {
			program = pc.Label
		}
		proof := reg.PaymentProof.TransactionID
		switch {
		case reg.PaymentProof.Link != "":
			proof = reg.PaymentProof.Link
		case reg.ScreenshotURL != "":
			proof = reg.ScreenshotURL
		}

		row := []interface{}{
			reg.RegisteredAt.Format("2006-01-02 15:04"),
			reg.Student.FullName,
			reg.Student.Email,
			reg.Student.Phone,
			reg.Student.DateOfBirth,
			reg.Student.Gender,
			reg.Student.Address,
			reg.Selection.SchoolLevel,
			program,
			strings.Join(reg.Selection.SelectedCourses, ", "),
			reg.CalculatedPrice,
			string(reg.PaymentProof.Type),
			proof,
			reg.PaymentVerified,
			reg.AdminNote,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err = f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
