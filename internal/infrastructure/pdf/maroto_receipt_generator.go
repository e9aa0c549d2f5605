// Package pdf renders printable release receipts.
//
// Page layout (A5 portrait):
//
//	┌──────────────────────────────────────────────┐
//	│  Property name          │  Receipt id + date │
//	│  Warehouse Release Receipt                   │
//	│  ──────────────────────────────────────────  │
//	│  Released to / Department │ Released by      │
//	│  ──────────────────────────────────────────  │
//	│  SKU | Item Description | Quantity | Unit    │
//	│  ──────────────────────────────────────────  │
//	│  Signature image         │  QR (receipt id)  │
//	│  Footer                                      │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
)

// Footer is printed at the bottom of every receipt.
const Footer = "Sunlight Guest Hotel Coron • Warehouse Management System"

const pngDataURLPrefix = "data:image/png;base64,"

// ── Palette ──────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 64, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 230, Green: 236, Blue: 245}
)

// ── Generator ────────────────────────────────────────────────────────────────

var _ inventory.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implements inventory.ReceiptGenerator with Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator builds the generator.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt renders the receipt and returns the PDF bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(_ context.Context, r *inventory.Receipt) ([]byte, error) {
	if r == nil || r.ID == "" {
		return nil, fmt.Errorf("pdf: receipt id is required")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Warehouse Release Receipt "+r.ID, true).
		WithAuthor(r.PropertyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(signatureRow(r))
	m.AddRows(line.NewRow(2))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(Footer, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ─────────────────────────────────────────────────────────────────

func headerRow(r *inventory.Receipt) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.PropertyName, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1}),
			text.New("Warehouse Release Receipt", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(r.ID, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1}),
			text.New(r.IssuedAt.Format("Jan 2, 2006 3:04 PM"), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func partiesRow(r *inventory.Receipt) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("RELEASED TO", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(r.ReceiverName, "N/A"), props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
			text.New(nonEmpty(r.Department, "N/A"), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("RELEASED BY", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(r.ReleasedBy, "Unknown"), props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("SKU", 3, align.Left),
		h("Item Description", 5, align.Left),
		h("Quantity", 2, align.Right),
		h("Unit", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRows(lines []inventory.ReceiptLine) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(6).Add(
			col.New(3).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.UOM, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return out
}

// signatureRow shows the receiver's signature next to a QR code of the receipt id.
func signatureRow(r *inventory.Receipt) core.Row {
	components := []core.Component{
		text.New("Receiver signature:", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
	}
	if png, ok := decodeSignature(r.Signature); ok {
		components = append(components, image.NewFromBytes(png, extension.Png, props.Rect{Top: 5, Percent: 80}))
	} else {
		components = append(components, text.New("No signature on file", props.Text{Size: 8, Top: 10, Color: colorGray}))
	}
	return row.New(32).Add(
		col.New(8).Add(components...),
		col.New(4).Add(code.NewQr(r.ID, props.Rect{Percent: 85, Center: true})),
	)
}

// ── helpers ──────────────────────────────────────────────────────────────────

// decodeSignature extracts PNG bytes from a data URL.
func decodeSignature(dataURL string) ([]byte, bool) {
	if !strings.HasPrefix(dataURL, pngDataURLPrefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, pngDataURLPrefix))
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
