package submission

import (
	"testing"
	"time"

	"gise-backend/internal/models"
	"gise-backend/internal/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeskBody() SubmitRequest {
	return SubmitRequest{
		Date: "2025-12-09",
		Products: map[string]float64{
			"dolum":   10,
			"tamKart": 2,
		},
		CategoryCreditCards: map[string]float64{
			"kart": 50,
		},
		Payments: PaymentsRequest{GunbasiNakit: 100},
		Banknotes: map[string]recon.BanknoteCount{
			"dolum": {B10: 1},
			"kart":  {B50: 1},
		},
		BankSentCash: map[string]float64{"kart": 50},
	}
}

func TestParseSubmitRequest(t *testing.T) {
	p, err := parseSubmitRequest(recon.Desk, validDeskBody())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC), p.date)
	assert.Equal(t, recon.FromLira(110), p.totals.TotalSales)
	assert.Equal(t, recon.FromLira(50), p.totals.TotalCreditCard)
	assert.Equal(t, recon.FromLira(60), p.totals.TotalCash)
	assert.Equal(t, recon.FromLira(160), p.totals.CashInRegister)
	assert.Equal(t, recon.FromLira(-40), p.totals.Difference)
	assert.Equal(t, recon.FromLira(50), p.bankSent[recon.CategoryKart])
}

func TestParseSubmitRequestRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitRequest)
		wantErr string
	}{
		{
			name:    "missing date",
			mutate:  func(b *SubmitRequest) { b.Date = "" },
			wantErr: "tarih zorunlu",
		},
		{
			name:    "bad date format",
			mutate:  func(b *SubmitRequest) { b.Date = "09.12.2025" },
			wantErr: "tarih formatı geçersiz",
		},
		{
			name:    "unknown product",
			mutate:  func(b *SubmitRequest) { b.Products["posRulosu"] = 1 },
			wantErr: "bilinmeyen ürün",
		},
		{
			name:    "negative quantity",
			mutate:  func(b *SubmitRequest) { b.Products["dolum"] = -1 },
			wantErr: "negatif olamaz",
		},
		{
			name:    "credit above category gross",
			mutate:  func(b *SubmitRequest) { b.CategoryCreditCards["kart"] = 150 },
			wantErr: "kategori toplamını aşamaz",
		},
		{
			name:    "unknown credit category",
			mutate:  func(b *SubmitRequest) { b.CategoryCreditCards["pos"] = 1 },
			wantErr: "bilinmeyen kategori",
		},
		{
			name:    "negative payment",
			mutate:  func(b *SubmitRequest) { b.Payments.ErtesiGuneBirakilan = -5 },
			wantErr: "negatif olamaz",
		},
		{
			name: "banknotes for unknown category",
			mutate: func(b *SubmitRequest) {
				b.Banknotes["kartKilifi"] = recon.BanknoteCount{B5: 1} // kılıf için kupür tutulmaz
			},
			wantErr: "bilinmeyen kupür kategorisi",
		},
		{
			name:    "negative bank sent amount",
			mutate:  func(b *SubmitRequest) { b.BankSentCash["kart"] = -10 },
			wantErr: "negatif olamaz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validDeskBody()
			tt.mutate(&body)
			_, err := parseSubmitRequest(recon.Desk, body)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

// Teslim edilen ham bloklardan toplamlar bloğu her zaman yeniden türetilebilir
// olmalı: kalıcı hali açıp hesaplayınca aynı değerler çıkar.
func TestPayloadRoundTrip(t *testing.T) {
	p, err := parseSubmitRequest(recon.Desk, validDeskBody())
	require.NoError(t, err)

	sub := models.Submission{
		RecordType:       string(recon.RecordTypeDesk),
		SubmittedBy:      7,
		SubmittedByEmail: "gise@example.com",
		SubmittedAt:      time.Now(),
		Status:           models.StatusSubmitted,
	}
	require.NoError(t, p.apply(&sub))

	resp, err := toResponse(sub)
	require.NoError(t, err)

	assert.Equal(t, "2025-12-09", resp.Date)
	assert.Equal(t, 110.0, resp.Totals.TotalSales)
	assert.Equal(t, 50.0, resp.Totals.TotalCreditCard)
	assert.Equal(t, 60.0, resp.Totals.TotalCash)
	assert.Equal(t, 160.0, resp.Totals.CashInRegister)
	assert.Equal(t, -40.0, resp.Totals.Difference)
	assert.Equal(t, 50.0, resp.BankSentCash["kart"])
	assert.Equal(t, 50.0, resp.BankSentCash["totalSent"])
	assert.Equal(t, models.StatusSubmitted, resp.Status)

	// Saklanan ham alanlara aynı hesap tekrar uygulanınca aynı toplamlar çıkmalı
	recomputed := recon.Desk.ComputeTotals(resp.Products,
		map[recon.Category]recon.Kurus{recon.CategoryKart: recon.FromLira(resp.CategoryCreditCards["kart"])},
		recon.Payments{
			GunbasiNakit:        recon.FromLira(resp.Payments.GunbasiNakit),
			BankayaGonderilen:   recon.FromLira(resp.Payments.BankayaGonderilen),
			ErtesiGuneBirakilan: recon.FromLira(resp.Payments.ErtesiGuneBirakilan),
		})
	assert.Equal(t, recomputed.TotalSales, recon.FromLira(resp.Totals.TotalSales))
	assert.Equal(t, recomputed.Difference, recon.FromLira(resp.Totals.Difference))

	// Kupür çapraz kontrolü yanıt içinde: dolum nakit 10, sayım 10 → uyum;
	// kart nakit 50, sayım 50 → uyum; vize nakit 0, sayım 0 → uyum.
	require.Len(t, resp.CrossChecks, 3)
	for _, ch := range resp.CrossChecks {
		assert.False(t, ch.Mismatch, ch.Category)
	}
}

func TestPayloadCrossCheckMismatchSurfaced(t *testing.T) {
	body := validDeskBody()
	body.Banknotes["kart"] = recon.BanknoteCount{B20: 2, B5: 1, C1: 4, C050: 1} // 49.50, beklenen 50

	p, err := parseSubmitRequest(recon.Desk, body)
	require.NoError(t, err)

	sub := models.Submission{RecordType: string(recon.RecordTypeDesk), SubmittedAt: time.Now(), Status: models.StatusSubmitted}
	require.NoError(t, p.apply(&sub))

	resp, err := toResponse(sub)
	require.NoError(t, err)

	var kart CrossCheckResponse
	for _, ch := range resp.CrossChecks {
		if ch.Category == "kart" {
			kart = ch
		}
	}
	assert.True(t, kart.Mismatch)
	assert.Equal(t, 50.0, kart.Expected)
	assert.Equal(t, 49.5, kart.Counted)
	assert.Equal(t, 0.5, kart.Difference)
}
