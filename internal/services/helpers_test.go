package services

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// makePDF renders each entry as one page of plain Helvetica text.
func makePDF(t *testing.T, pages ...[]string) []byte {
	t.Helper()

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(false)
	pdf.SetFont("Helvetica", "", 11)
	for _, lines := range pages {
		pdf.AddPage()
		y := 60.0
		for _, line := range lines {
			pdf.Text(50, y, line)
			y += 14
		}
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}
