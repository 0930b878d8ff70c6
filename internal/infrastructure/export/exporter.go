package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"recommender/internal/domain/recommendation"
)

// ExportFormat формат экспорта
type ExportFormat string

const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatExcel ExportFormat = "excel"
)

// ParseFormat разбирает формат экспорта из строки запроса
func ParseFormat(raw string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// ExportedOpportunity экспортируемая возможность
type ExportedOpportunity struct {
	Rank    int     `json:"rank"`
	Product string  `json:"product"`
	Type    string  `json:"type"`
	Score   float64 `json:"score"`
	Reasons string  `json:"reasons"`
}

// File результат экспорта: содержимое, имя файла и MIME-тип
type File struct {
	Content     []byte
	Filename    string
	ContentType string
}

// Exporter экспортер оцененных возможностей
type Exporter struct{}

// NewExporter создает новый экспортер
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export выгружает ранжированные возможности клиента в указанном формате
func (e *Exporter) Export(result *recommendation.Result, format ExportFormat) (*File, error) {
	items := make([]ExportedOpportunity, 0, len(result.Opportunities))
	for i, opp := range result.Opportunities {
		items = append(items, ExportedOpportunity{
			Rank:    i + 1,
			Product: opp.Product,
			Type:    string(opp.Type),
			Score:   opp.Score,
			Reasons: strings.Join(opp.Reasons, " "),
		})
	}

	base := fmt.Sprintf("opportunities_%s_%s", result.Profile.CustomerID, time.Now().Format("2006-01-02"))

	switch format {
	case FormatJSON:
		return e.exportJSON(items, base)
	case FormatCSV:
		return e.exportCSV(items, base)
	case FormatExcel:
		return e.exportExcel(items, base)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func (e *Exporter) exportJSON(items []ExportedOpportunity, base string) (*File, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return &File{
		Content:     data,
		Filename:    base + ".json",
		ContentType: "application/json",
	}, nil
}

func (e *Exporter) exportCSV(items []ExportedOpportunity, base string) (*File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader()); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range items {
		row := []string{
			fmt.Sprintf("%d", item.Rank),
			item.Product,
			item.Type,
			fmt.Sprintf("%.2f", item.Score),
			item.Reasons,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return &File{
		Content:     buf.Bytes(),
		Filename:    base + ".csv",
		ContentType: "text/csv",
	}, nil
}

func (e *Exporter) exportExcel(items []ExportedOpportunity, base string) (*File, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Opportunities"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, title := range exportHeader() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, item := range items {
		row := i + 2
		values := []interface{}{item.Rank, item.Product, item.Type, item.Score, item.Reasons}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize excel file: %w", err)
	}

	return &File{
		Content:     buf.Bytes(),
		Filename:    base + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

func exportHeader() []string {
	return []string{"Rank", "Product", "Type", "Score", "Reasons"}
}
