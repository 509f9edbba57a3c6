package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/llm-dissector/internal/catalog"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/xuri/excelize/v2"
)

const (
	StagesSheet      = "Stages"
	QuizOptionsSheet = "QuizOptions"
)

// ExportService renders the stage catalog, including answer keys, as a
// spreadsheet for instructors.
type ExportService interface {
	Enabled() bool
	ExportCatalogToExcel(ctx context.Context) ([]byte, error)
}

type exportService struct {
	enabled bool
	logger  utils.Logger
}

func NewExportService(enabled bool, logger utils.Logger) ExportService {
	return &exportService{
		enabled: enabled,
		logger:  logger,
	}
}

func (s *exportService) Enabled() bool {
	return s.enabled
}

func (s *exportService) ExportCatalogToExcel(ctx context.Context) ([]byte, error) {
	if !s.enabled {
		return nil, ErrExportDisabled
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the stages sheet.
	if err := f.SetSheetName(f.GetSheetName(0), StagesSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	stageRows := [][]interface{}{
		{"Stage", "Label", "Answer Key", "Max Output Tokens"},
	}
	for _, st := range catalog.Stages() {
		stageRows = append(stageRows, []interface{}{
			st.Index, st.DisplayLabel, string(st.CorrectAnswerKey), st.MaxOutputTokens,
		})
	}
	if err := writeRows(f, StagesSheet, stageRows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(QuizOptionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	optionRows := [][]interface{}{
		{"Key", "Description"},
	}
	for _, opt := range catalog.QuizOptions() {
		optionRows = append(optionRows, []interface{}{string(opt.Key), opt.Description})
	}
	if err := writeRows(f, QuizOptionsSheet, optionRows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Catalog exported",
		"stages", len(stageRows)-1,
		"quiz_options", len(optionRows)-1,
		"bytes", buf.Len())

	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+1)
			if err != nil {
				return fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
