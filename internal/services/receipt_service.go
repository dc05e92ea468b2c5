package services

import (
	"bytes"
	"fmt"

	"saraf-backend/internal/config"
	"saraf-backend/internal/models"
	"saraf-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders a printable PDF receipt for a sale bill.
type ReceiptService struct {
	cfg *config.Config
}

func NewReceiptService(cfg *config.Config) *ReceiptService {
	return &ReceiptService{cfg: cfg}
}

func (s *ReceiptService) GenerateBillReceipt(bill *models.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, s.cfg.Shop.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if s.cfg.Shop.Address != "" {
		pdf.CellFormat(190, 6, s.cfg.Shop.Address, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(190, 6, fmt.Sprintf("Bill #%d  |  %s", bill.ID, timeutil.ToIST(bill.CreatedAt).Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", bill.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", bill.CustomerPhoneNo), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Address: %s", bill.Address), "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(50, 7, "Name", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Weight (g)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(18, 7, "Purity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Making", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Price", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range bill.Items {
		name := item.Name
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		pdf.CellFormat(50, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, string(item.Kind), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.3f", item.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%.1f", item.Purity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.MakingCharges), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Price), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// Return items, if the customer gave back old metal
	if len(bill.ReturnItems) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Returned Metal", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 7, "Name", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Metal", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Weight (g)", "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 7, "Purity", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Value", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range bill.ReturnItems {
			pdf.CellFormat(60, 6, item.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, string(item.Kind), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.3f", item.Weight), "1", 0, "R", false, 0, "")
			pdf.CellFormat(20, 6, fmt.Sprintf("%.1f", item.Purity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", item.ReturnPrice), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// Payment summary
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Net Amount: Rs. %.2f", bill.Amount), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Earlier Deposited: Rs. %.2f", bill.EarlierDepositedAmount), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Paid (%s): Rs. %.2f", bill.PaymentMode, bill.AmountPaid), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Remaining: Rs. %.2f", bill.PaymentRemaining), "RB", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(190, 8, fmt.Sprintf("Status: %s", bill.PaymentStatus), "LRB", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
