package recon_test

import (
	"testing"

	"gise-backend/internal/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantFor(t *testing.T) {
	v, err := recon.VariantFor("desk")
	require.NoError(t, err)
	assert.Equal(t, recon.RecordTypeDesk, v.Type)
	assert.Len(t, v.Categories, 4)
	assert.Len(t, v.BanknoteCategories, 3)

	v, err = recon.VariantFor("bayi-dolum")
	require.NoError(t, err)
	assert.Equal(t, recon.RecordTypeBayi, v.Type)
	assert.Len(t, v.Categories, 2)

	_, err = recon.VariantFor("kiosk")
	assert.Error(t, err)
}

func TestGrossTotalsDesk(t *testing.T) {
	products := map[string]float64{
		"dolum":         10,
		"tamKart":       2,
		"indirimliKart": 1,
		"serbestKart":   1,
		"serbestVize":   2,
		"indirimliVize": 4,
		"kartKilifi":    3,
	}

	gross := recon.Desk.GrossTotals(products)

	assert.Equal(t, recon.Kurus(1000), gross[recon.CategoryDolum])        // 10 × 1 TL
	assert.Equal(t, recon.Kurus(30000), gross[recon.CategoryKart])        // 2×50 + 1×100 + 1×100
	assert.Equal(t, recon.Kurus(25000), gross[recon.CategoryVize])        // 2×75 + 4×25
	assert.Equal(t, recon.Kurus(3000), gross[recon.CategoryKartKilifi])   // 3 × 10
}

func TestGrossTotalsBayi(t *testing.T) {
	products := map[string]float64{
		"bayiDolum":      100,
		"bayiTamKart":    2,
		"bayiKartKilifi": 1,
		"posRulosu":      3,
	}

	gross := recon.BayiDolum.GrossTotals(products)

	assert.Equal(t, recon.Kurus(10000), gross[recon.CategoryDolum]) // 100 × 1 TL
	assert.Equal(t, recon.Kurus(15000), gross[recon.CategoryKart])  // 2×50 + 1×20 + 3×10
}

func TestSplitCashFloorsAtZero(t *testing.T) {
	assert.Equal(t, recon.Kurus(0), recon.SplitCash(recon.FromLira(500), recon.FromLira(600)))
	assert.Equal(t, recon.Kurus(0), recon.SplitCash(0, 0))
	assert.Equal(t, recon.FromLira(450), recon.SplitCash(recon.FromLira(500), recon.FromLira(50)))
}

func TestComputeTotalsEndToEnd(t *testing.T) {
	// Gişe senaryosu: dolum 10×1=10 TL, kart 2×50=100 TL; kart için 50 TL KK.
	products := map[string]float64{"dolum": 10, "tamKart": 2}
	credits := map[recon.Category]recon.Kurus{
		recon.CategoryKart: recon.FromLira(50),
	}
	pay := recon.Payments{GunbasiNakit: recon.FromLira(100)}

	got := recon.Desk.ComputeTotals(products, credits, pay)

	assert.Equal(t, recon.FromLira(110), got.TotalSales)
	assert.Equal(t, recon.FromLira(50), got.TotalCreditCard)
	assert.Equal(t, recon.FromLira(60), got.TotalCash) // dolum 10 + kart 50
	// kasada kalan = 100 + 110 − (50 + 0 + 0) = 160
	assert.Equal(t, recon.FromLira(160), got.CashInRegister)
	// fark = 110 − (100 + 50 + 0 + 0) = −40
	assert.Equal(t, recon.FromLira(-40), got.Difference)
}

func TestComputeTotalsAllBuckets(t *testing.T) {
	products := map[string]float64{"bayiDolum": 500, "bayiTamKart": 4}
	credits := map[recon.Category]recon.Kurus{
		recon.CategoryDolum: recon.FromLira(100),
		recon.CategoryKart:  recon.FromLira(200),
	}
	pay := recon.Payments{
		GunbasiNakit:        recon.FromLira(150),
		BankayaGonderilen:   recon.FromLira(300),
		ErtesiGuneBirakilan: recon.FromLira(50),
	}

	got := recon.BayiDolum.ComputeTotals(products, credits, pay)

	assert.Equal(t, recon.FromLira(700), got.TotalSales) // 500 + 200
	assert.Equal(t, recon.FromLira(300), got.TotalCreditCard)
	assert.Equal(t, recon.FromLira(400), got.TotalCash)
	// 150 + 700 − (300 + 300 + 50) = 200
	assert.Equal(t, recon.FromLira(200), got.CashInRegister)
	// 700 − (150 + 300 + 300 + 50) = −100
	assert.Equal(t, recon.FromLira(-100), got.Difference)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	products := map[string]float64{"dolum": 37, "serbestVize": 3, "kartKilifi": 5}
	credits := map[recon.Category]recon.Kurus{recon.CategoryVize: recon.FromLira(75)}
	pay := recon.Payments{GunbasiNakit: recon.FromLira(20)}

	first := recon.Desk.ComputeTotals(products, credits, pay)
	second := recon.Desk.ComputeTotals(products, credits, pay)

	assert.Equal(t, first, second)
}

func TestValidateCredits(t *testing.T) {
	products := map[string]float64{"dolum": 10, "tamKart": 2} // dolum 10 TL, kart 100 TL

	err := recon.Desk.ValidateCredits(products, map[recon.Category]recon.Kurus{
		recon.CategoryKart: recon.FromLira(100),
	})
	assert.NoError(t, err)

	err = recon.Desk.ValidateCredits(products, map[recon.Category]recon.Kurus{
		recon.CategoryKart: recon.FromLira(101),
	})
	assert.ErrorContains(t, err, "kategori toplamını aşamaz")

	err = recon.Desk.ValidateCredits(products, map[recon.Category]recon.Kurus{
		recon.CategoryDolum: recon.FromLira(-1),
	})
	assert.ErrorContains(t, err, "negatif olamaz")

	err = recon.Desk.ValidateCredits(products, map[recon.Category]recon.Kurus{
		recon.Category("pos"): 0,
	})
	assert.ErrorContains(t, err, "bilinmeyen kategori")
}

func TestValidateProducts(t *testing.T) {
	assert.NoError(t, recon.Desk.ValidateProducts(map[string]float64{"dolum": 0, "tamKart": 5}))
	assert.ErrorContains(t, recon.Desk.ValidateProducts(map[string]float64{"bayiDolum": 1}), "bilinmeyen ürün")
	assert.ErrorContains(t, recon.Desk.ValidateProducts(map[string]float64{"dolum": -1}), "negatif olamaz")
}

func TestCrossChecks(t *testing.T) {
	// kart nakit payı 50 TL; sayım 49.50 → uyuşmazlık, 50.00 → uyum
	products := map[string]float64{"tamKart": 2}
	credits := map[recon.Category]recon.Kurus{recon.CategoryKart: recon.FromLira(50)}

	banknotes := map[recon.Category]recon.BanknoteCount{
		recon.CategoryKart: {B20: 2, B5: 1, C1: 4, C050: 1}, // 49.50
	}
	checks := recon.Desk.CrossChecks(products, credits, banknotes)
	require.Len(t, checks, 3)

	var kart recon.CrossCheck
	for _, ch := range checks {
		if ch.Category == recon.CategoryKart {
			kart = ch
		}
	}
	assert.True(t, kart.Mismatch)
	assert.Equal(t, recon.Kurus(50), kart.Delta) // 50.00 − 49.50

	banknotes[recon.CategoryKart] = recon.BanknoteCount{B50: 1} // tam 50.00
	checks = recon.Desk.CrossChecks(products, credits, banknotes)
	for _, ch := range checks {
		if ch.Category == recon.CategoryKart {
			assert.False(t, ch.Mismatch)
			assert.Equal(t, recon.Kurus(0), ch.Delta)
		}
	}
}
