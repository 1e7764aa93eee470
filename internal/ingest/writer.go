package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"consolidator/internal/model"
)

// MasterSheetName 导出工作表名
const MasterSheetName = "Master_Sheet"

// NewWorkbook 将主表写入新工作簿（表头 + 数据行，首行加粗）
func NewWorkbook(table *model.MasterTable) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", MasterSheetName)

	columns := table.Columns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		f.SetCellValue(MasterSheetName, cell, col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetRowStyle(MasterSheetName, 1, 1, headerStyle)
	}

	for rowIdx := range table.Rows {
		row := &table.Rows[rowIdx]
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			f.SetCellValue(MasterSheetName, cell, row.Get(col))
		}
	}

	return f, nil
}

// WriteXLSX 主表导出为 xlsx 字节流
func WriteXLSX(table *model.MasterTable) ([]byte, error) {
	f, err := NewWorkbook(table)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV 主表导出为 CSV 字节流
func WriteCSV(table *model.MasterTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	columns := table.Columns()
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(columns))
	for i := range table.Rows {
		row := &table.Rows[i]
		for j, col := range columns {
			record[j] = row.Get(col)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
