// services/invoice_service.go
package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// MembershipFee is the fixed yearly contribution, in euro.
const MembershipFee = 50.00

// InvoiceData is everything the renderer needs. IssuedAt is explicit so the
// output is deterministic for a given input.
type InvoiceData struct {
	MemberCode string
	FirstName  string
	LastName   string
	Email      string
	Phone      *string

	Street       *string
	PostalCode   *string
	City         *string
	AddressExtra *string

	IssuedAt time.Time
}

type InvoiceService struct{}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{}
}

// Render produces the membership invoice as a single-page A4 PDF. Address
// lines are included only when the corresponding field is present.
func (s *InvoiceService) Render(inv InvoiceData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(inv.IssuedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, tr("Factuur lidmaatschap Mahber"))
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr("Lidnummer: "+inv.MemberCode))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Datum: "+inv.IssuedAt.Format("02-01-2006")))
	pdf.Ln(10)

	pdf.Cell(0, 6, tr(inv.FirstName+" "+inv.LastName))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(inv.Email))
	pdf.Ln(6)
	if inv.Phone != nil {
		pdf.Cell(0, 6, tr(*inv.Phone))
		pdf.Ln(6)
	}
	if inv.Street != nil {
		pdf.Cell(0, 6, tr(*inv.Street))
		pdf.Ln(6)
	}
	if inv.AddressExtra != nil {
		pdf.Cell(0, 6, tr(*inv.AddressExtra))
		pdf.Ln(6)
	}
	if inv.PostalCode != nil || inv.City != nil {
		line := deref(inv.PostalCode)
		if inv.City != nil {
			if line != "" {
				line += " "
			}
			line += *inv.City
		}
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Lidmaatschapsbijdrage: € %.2f", MembershipFee)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr("Jaarlijkse bijdrage voor het lidmaatschap van Mahber."))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Gelieve te betalen binnen 30 dagen na ontvangst."))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
