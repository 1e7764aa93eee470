package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"consolidator/internal/model"
)

// 支持的源文件格式
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// IsSupported 判断文件扩展名是否受支持
func IsSupported(filename string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ReadFile 读取单个源文件，xlsx 的每个工作表各成一张 RawSheet
func ReadFile(path string) ([]model.RawSheet, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}

	if ext == ".csv" {
		sheet, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		return []model.RawSheet{sheet}, nil
	}
	return readWorkbook(path)
}

// ReadFiles 批量读取，单文件失败不中断其余文件
func ReadFiles(paths []string) *Result {
	start := time.Now()
	result := &Result{FileCount: len(paths)}

	for _, path := range paths {
		sheets, err := ReadFile(path)
		if err != nil {
			result.Errors = append(result.Errors, FileError{
				FileName: filepath.Base(path),
				Message:  err.Error(),
			})
			continue
		}
		for _, sheet := range sheets {
			result.TotalRows += sheet.RowCount()
		}
		result.Sheets = append(result.Sheets, sheets...)
	}

	result.Duration = time.Since(start)
	return result
}

// AllHeaders 汇总所有工作表的去重表头，字典序输出
func AllHeaders(sheets []model.RawSheet) []string {
	seen := make(map[string]bool)
	for i := range sheets {
		for _, h := range sheets[i].Headers {
			seen[h] = true
		}
	}
	headers := make([]string, 0, len(seen))
	for h := range seen {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	return headers
}

// readWorkbook 读取工作簿的全部工作表，首行作为表头
// 单个工作表读取失败时跳过该表，继续其余工作表
func readWorkbook(path string) ([]model.RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	fileName := filepath.Base(path)
	var sheets []model.RawSheet

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		sheets = append(sheets, buildSheet(fileName, sheetName, rows))
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no readable sheets", fileName)
	}
	return sheets, nil
}

// readCSV CSV 视作单工作表文件，工作表名固定为 Sheet1
func readCSV(path string) (model.RawSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.RawSheet{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.RawSheet{}, fmt.Errorf("read csv %s: %w", filepath.Base(path), err)
		}
		rows = append(rows, record)
	}

	return buildSheet(filepath.Base(path), "Sheet1", rows), nil
}

// buildSheet 首行作为表头，其余行补齐/截断到表头宽度
func buildSheet(fileName, sheetName string, rows [][]string) model.RawSheet {
	sheet := model.RawSheet{
		FileName:  fileName,
		SheetName: sheetName,
	}
	if len(rows) == 0 {
		return sheet
	}

	sheet.Headers = rows[0]
	width := len(sheet.Headers)
	for _, row := range rows[1:] {
		aligned := make([]string, width)
		for i := 0; i < width && i < len(row); i++ {
			aligned[i] = row[i]
		}
		sheet.Rows = append(sheet.Rows, aligned)
	}
	return sheet
}
