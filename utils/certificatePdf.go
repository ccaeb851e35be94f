package utils

import (
	"bytes"
	"time"

	"memarya/config"

	"github.com/jung-kurt/gofpdf"
)

// RenderCertificatePDF draws a landscape A4 completion certificate and
// returns the PDF bytes. Pure presentation: eligibility is checked by the
// caller before rendering.
func RenderCertificatePDF(studentName, courseTitle, certificateNumber string, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Border
	pdf.SetDrawColor(27, 42, 74)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(13, 13, pageW-26, pageH-26, "D")

	pdf.SetTextColor(27, 42, 74)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetY(40)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(8)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, studentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Ln(4)
	pdf.CellFormat(0, 10, courseTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Ln(10)
	pdf.CellFormat(0, 7, "Issued on "+issuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Certificate No. "+certificateNumber, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetY(pageH - 35)
	pdf.CellFormat(0, 6, config.AppConfig.CertificateIssuer, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
