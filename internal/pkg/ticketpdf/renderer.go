package ticketpdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	bandHeight = 50.0
	qrSize     = 50.0
	qrPixels   = 256

	purchaseDateLayout = "January 02, 2006 at 03:04 PM"
)

// Renderer writes one A4 ticket per call into dir. The page carries the
// ticket details and a QR code holding the scan payload.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{
		dir: dir,
	}
}

// Render writes the ticket into a fresh file under dir and returns its path.
// qrContent is embedded verbatim in the QR code. Every call gets its own
// file so concurrent renders of one ticket never share a path.
func (r *Renderer) Render(ctx context.Context, ticket domain.Ticket, qrContent []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	png, err := qrcode.Encode(string(qrContent), qrcode.Highest, qrPixels)
	if err != nil {
		return "", fmt.Errorf("qrcode.Encode -> %w", err)
	}

	if err = os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	f, err := os.CreateTemp(r.dir, "ticket_*.pdf")
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp -> %w", err)
	}
	path := f.Name()

	pdf := buildPage(ticket, png)
	err = pdf.Output(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("pdf.Output -> %w", err)
	}

	zap.L().Debug("ticket document rendered", zap.String("ticket_id", ticket.ID), zap.String("path", path))

	return path, nil
}

// FileName is the download name of a ticket document. It is never used
// as an on-disk path.
func FileName(ticketID string) string {
	return "ticket_" + filepath.Base(ticketID) + ".pdf"
}

func buildPage(ticket domain.Ticket, qrPNG []byte) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ticket.EventName, true)
	pdf.AddPage()

	pdf.SetFillColor(242, 242, 242)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	pdf.SetFillColor(51, 77, 204)
	pdf.Rect(0, 0, pageWidth, bandHeight, "F")
	pdf.Rect(0, pageHeight-bandHeight, pageWidth, bandHeight, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.Text(25, 32, "BIG BULL EVENTS")

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(25, 70, ticket.EventName)

	imageName := "qr_" + ticket.ID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imageName, pageWidth-25-qrSize, 60, qrSize, qrSize, false, opts, 0, "")

	details := [][2]string{
		{"TICKET ID", ticket.ID},
		{"DATE PURCHASED", ticket.PurchaseDate.Format(purchaseDateLayout)},
		{"EMAIL", ticket.Email},
		{"PRICE", fmt.Sprintf("LKR %.2f", ticket.Price)},
	}

	pdf.SetFont("Helvetica", "", 12)
	y := 125.0
	for _, d := range details {
		pdf.Text(25, y, d[0]+": "+d[1])
		y += 12.7
	}

	return pdf
}
