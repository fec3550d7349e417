package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"opora-safety/internal/models"

	"github.com/xuri/excelize/v2"
)

// ModerationExportHeader 审核导出表头
// 刻意不含内容列：导出文件可能离开受控环境
var ModerationExportHeader = []string{
	"Question ID",
	"Flags",
	"Status",
	"Created At",
	"Updated At",
}

// GenerateModerationExport 生成审核队列 Excel 文件
// items 为空时只生成表头
func GenerateModerationExport(items []models.Question) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	sheetName := "Moderation Queue"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	// 表头
	for col, header := range ModerationExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	// 数据行
	for row, item := range items {
		flagNames := make([]string, 0, len(item.TriggerFlags))
		for _, flag := range item.TriggerFlags {
			flagNames = append(flagNames, string(flag))
		}

		values := []any{
			item.QuestionID,
			strings.Join(flagNames, ", "),
			string(item.Status),
			item.CreatedAt.Format("2006-01-02 15:04:05"),
			item.UpdatedAt.Format("2006-01-02 15:04:05"),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}
