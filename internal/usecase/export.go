package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"

	"github.com/xuri/excelize/v2"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
)

var exportHeaders = []string{"CANDIDATE NAME", "EMAIL", "APPLIED DATE", "STATUS", "RESUME"}

// ExportForJob renders a job's applicants as xlsx (default) or csv.
func (u *applicationUsecase) ExportForJob(ctx context.Context, jobID, format string, caller domain.Identity) (*domain.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "xlsx" && format != "csv" {
		return nil, apperror.BadRequest(fmt.Sprintf("Unsupported export format: %s", format))
	}

	job, err := u.ownedJob(ctx, jobID, caller)
	if err != nil {
		return nil, err
	}
	views, err := u.appRepo.ListForJob(ctx, job.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.CandidateName,
			v.CandidateEmail,
			v.AppliedDate.UTC().Format("2006-01-02 15:04"),
			string(v.Status),
			v.ResumePath,
		})
	}

	stamp := u.now().Format("20060102_150405")
	var file *domain.ExportFile
	if format == "csv" {
		file, err = exportCSV(rows, stamp)
	} else {
		file, err = exportExcel(rows, stamp)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.secLogger.Log(ctx, security.SecurityEvent{
		Event:        security.EventDataExport,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(caller.ID),
		Details: map[string]interface{}{
			"job_id": job.ID,
			"format": file.ContentType,
			"rows":   len(rows),
		},
	})
	return file, nil
}

func exportExcel(rows [][]string, stamp string) (*domain.ExportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applicants"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return &domain.ExportFile{
		Name:        fmt.Sprintf("applicants_%s.xlsx", stamp),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func exportCSV(rows [][]string, stamp string) (*domain.ExportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return &domain.ExportFile{
		Name:        fmt.Sprintf("applicants_%s.csv", stamp),
		ContentType: contentTypeCSV,
		Data:        buf.Bytes(),
	}, nil
}
