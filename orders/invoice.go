package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"sparkle/apperr"
	"sparkle/config"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// DownloadInvoice renders the order as a PDF invoice with a QR code
// linking back to the order tracking page. Owner or admin only.
// GET /api/orders/:orderid/invoice
func DownloadInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := loadOrderAuthorized(ctx, r, ps.ByName("orderid"))
	if err != nil {
		apperr.Respond(w, err)
		return
	}

	qrData := fmt.Sprintf("%s/orders/%s", config.App.FrontendURL, order.OrderID)
	qrCode, _ := qrcode.Encode(qrData, qrcode.Medium, 128)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 15, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Order: %s\nPlaced: %s\nPayment: %s (%s)\nStatus: %s",
		order.OrderID,
		order.CreatedAt.Format("02 Jan 2006 15:04"),
		order.PaymentMethod,
		order.PaymentStatus,
		order.Status,
	), "", "L", false)
	pdf.Ln(4)

	addr := order.ShippingAddress
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Ship to", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%s %s\n%s\n%s, %s %s\nPhone: %s",
		addr.FirstName, addr.LastName, addr.Street, addr.City, addr.State, addr.Pincode, addr.Phone,
	), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(245, 245, 255)
	pdf.CellFormat(95, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(27, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(28, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(95, 8, item.NameAtOrder, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(27, 8, fmt.Sprintf("Rs %.2f", item.PriceAtOrder), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 8, fmt.Sprintf("Rs %.2f", item.PriceAtOrder*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(142, 8, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, 8, fmt.Sprintf("Rs %.2f", order.Subtotal), "1", 1, "R", false, 0, "")
	pdf.CellFormat(142, 8, "Shipping", "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, 8, fmt.Sprintf("Rs %.2f", order.ShippingFee), "1", 1, "R", false, 0, "")
	pdf.CellFormat(142, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(28, 8, fmt.Sprintf("Rs %.2f", order.Total), "1", 1, "R", true, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrCode))
	pdf.ImageOptions("qr", 150, 20, 35, 35, false, imgOpts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(0, 10, "Scan the QR code to track your order.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderID+".pdf")
	w.Write(buf.Bytes())
}
