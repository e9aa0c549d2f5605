package pdf_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/infrastructure/pdf"
)

func signatureDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func receipt(signature string) *inventory.Receipt {
	return &inventory.Receipt{
		ID:           "TX-ABC1234",
		PropertyName: "Sunlight Guest Hotel Coron",
		IssuedAt:     time.Date(2025, 3, 4, 10, 15, 0, 0, time.UTC),
		ReleasedBy:   "Admin User",
		Department:   "Kitchen",
		ReceiverName: "Chef Ana",
		Signature:    signature,
		Lines: []inventory.ReceiptLine{
			{SKU: "ITEM-AAAAA", Name: "Bottled Water", Quantity: 24, UOM: "Bottle"},
			{SKU: "ITEM-BBBBB", Name: "Dish Soap", Quantity: 2, UOM: "Gallon"},
		},
	}
}

func TestGenerateReceipt_WithSignature(t *testing.T) {
	out, err := pdf.NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), receipt(signatureDataURL(t)))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceipt_MissingOrBrokenSignature(t *testing.T) {
	gen := pdf.NewMarotoReceiptGenerator()
	for _, sig := range []string{"", "data:image/png;base64,@@@", "data:image/jpeg;base64,AAAA"} {
		out, err := gen.GenerateReceipt(context.Background(), receipt(sig))
		require.NoError(t, err, sig)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), sig)
	}
}

func TestGenerateReceipt_RequiresID(t *testing.T) {
	_, err := pdf.NewMarotoReceiptGenerator().GenerateReceipt(context.Background(), &inventory.Receipt{})
	assert.Error(t, err)
}
