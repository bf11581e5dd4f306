package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecorecoleccion-api/internal/application/analytics"
	"github.com/jhoicas/ecorecoleccion-api/internal/application/dto"
)

func TestGenerateReportPDF_ProduceDocumento(t *testing.T) {
	doc := analytics.ReportDocument{
		OwnerName:   "Ana Pérez",
		OwnerEmail:  "ana@eco.co",
		PeriodLabel: "Último año",
		GeneratedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Entries: []dto.ReportEntry{
			{ID: "c1", Date: "2026-10-01", Name: "Botellas", WasteType: "Plástico", Category: "plastico",
				Points: decimal.NewFromInt(10), Status: "completada", Route: "N/D"},
		},
		Stats: dto.ReportStatsResponse{Total: 1, Completed: 1, TotalPoints: decimal.NewFromInt(10), Categories: 1},
	}
	out, err := NewMarotoPDFGenerator().GenerateReportPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReportPDF_SinRecolecciones(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateReportPDF(context.Background(), analytics.ReportDocument{
		PeriodLabel: "Todo el historial", GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatPoints(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"-1000":   "-1.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatPoints(in), in)
	}
}
