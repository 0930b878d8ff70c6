package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recommender/internal/domain/models"
	"recommender/internal/domain/recommendation"
)

func exportResult() *recommendation.Result {
	return &recommendation.Result{
		Profile: &models.CustomerProfile{CustomerID: "C001", CustomerName: "Acme"},
		Opportunities: []recommendation.ScoredOpportunity{
			{Product: "Generators", Type: recommendation.OpportunityCrossSell, Score: 0.90,
				Reasons: []string{"first reason.", "second reason."}},
			{Product: "Drill Bits", Type: recommendation.OpportunityUpsell, Score: 0.80,
				Reasons: []string{"upsell reason."}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw      string
		expected ExportFormat
		wantErr  bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"CSV", FormatCSV, false},
		{"excel", FormatExcel, false},
		{"xlsx", FormatExcel, false},
		{" json ", FormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		format, err := ParseFormat(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "raw=%q", tt.raw)
		} else {
			require.NoError(t, err, "raw=%q", tt.raw)
			assert.Equal(t, tt.expected, format)
		}
	}
}

func TestExporter_JSON(t *testing.T) {
	file, err := NewExporter().Export(exportResult(), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "application/json", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Filename, "opportunities_C001_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".json"))

	var items []ExportedOpportunity
	require.NoError(t, json.Unmarshal(file.Content, &items))
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Rank)
	assert.Equal(t, "Generators", items[0].Product)
	assert.Equal(t, "Cross-Sell", items[0].Type)
	assert.Equal(t, "first reason. second reason.", items[0].Reasons)
}

func TestExporter_CSV(t *testing.T) {
	file, err := NewExporter().Export(exportResult(), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	rows, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "Product", "Type", "Score", "Reasons"}, rows[0])
	assert.Equal(t, []string{"1", "Generators", "Cross-Sell", "0.90", "first reason. second reason."}, rows[1])
	assert.Equal(t, []string{"2", "Drill Bits", "Upsell", "0.80", "upsell reason."}, rows[2])
}

func TestExporter_Excel(t *testing.T) {
	file, err := NewExporter().Export(exportResult(), FormatExcel)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

	book, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Opportunities")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Rank", "Product", "Type", "Score", "Reasons"}, rows[0])
	assert.Equal(t, "Generators", rows[1][1])
	assert.Equal(t, "Upsell", rows[2][2])
}

func TestExporter_EmptyOpportunities(t *testing.T) {
	result := &recommendation.Result{
		Profile: &models.CustomerProfile{CustomerID: "C001"},
	}

	file, err := NewExporter().Export(result, FormatJSON)
	require.NoError(t, err)

	var items []ExportedOpportunity
	require.NoError(t, json.Unmarshal(file.Content, &items))
	assert.Empty(t, items)
}
