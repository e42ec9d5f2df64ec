package recon

import "fmt"

// Payments gün sonu ödemeler bloğu. BankayaGonderilen elle girilen tutardır,
// kategori bazlı "bankaya gönderilen nakit" bloğundan bağımsızdır.
type Payments struct {
	GunbasiNakit        Kurus // gün başı kasa nakdi (devir)
	BankayaGonderilen   Kurus // bankaya fiilen gönderilen (elle girilir)
	ErtesiGuneBirakilan Kurus // ertesi güne bırakılan
}

// Validate negatif ödeme tutarlarını reddeder.
func (p Payments) Validate() error {
	if p.GunbasiNakit < 0 {
		return fmt.Errorf("günbaşı nakit negatif olamaz")
	}
	if p.BankayaGonderilen < 0 {
		return fmt.Errorf("bankaya gönderilen tutar negatif olamaz")
	}
	if p.ErtesiGuneBirakilan < 0 {
		return fmt.Errorf("ertesi güne bırakılan tutar negatif olamaz")
	}
	return nil
}

// Totals kayıtla birlikte saklanan hesaplanmış toplamlar bloğu.
type Totals struct {
	TotalSales      Kurus
	TotalCreditCard Kurus
	TotalCash       Kurus
	CashInRegister  Kurus
	Difference      Kurus
}

// GrossTotals her kategori için brüt satış toplamı: Σ adet × birim fiyat.
// Ödeme yönteminden bağımsızdır. Bilinmeyen ürünler ValidateProducts ile
// daha önce elenmiş olmalıdır; burada sessizce atlanır.
func (v Variant) GrossTotals(products map[string]float64) map[Category]Kurus {
	gross := make(map[Category]Kurus, len(v.Categories))
	for _, cat := range v.Categories {
		gross[cat] = 0
	}
	for key, qty := range products {
		p, ok := v.products[key]
		if !ok || qty < 0 {
			continue
		}
		gross[p.Category] += FromLira(qty * p.UnitPrice.Lira())
	}
	return gross
}

// SplitCash bir kategorinin nakit payı: max(0, brüt − kredi kartı).
// Taban, istemci sınırlaması aşılmış olsa bile negatif nakit üretilmesini önler.
func SplitCash(gross, credit Kurus) Kurus {
	cash := gross - credit
	if cash < 0 {
		return 0
	}
	return cash
}

// ComputeTotals ürün adetleri, kategori kredi tutarları ve ödemeler bloğundan
// toplamlar bloğunu üretir. Yan etkisiz; aynı girdi her zaman aynı çıktıyı verir.
//
//	cashInRegister = günbaşı + toplam satış − (toplam KK + bankaya gönderilen + ertesi güne bırakılan)
//	difference     = toplam satış − (günbaşı + toplam KK + bankaya gönderilen + ertesi güne bırakılan)
//
// difference işareti korunur: pozitif fazla, negatif açık demektir.
func (v Variant) ComputeTotals(products map[string]float64, credits map[Category]Kurus, pay Payments) Totals {
	gross := v.GrossTotals(products)

	var t Totals
	for _, cat := range v.Categories {
		t.TotalSales += gross[cat]
		t.TotalCreditCard += credits[cat]
		t.TotalCash += SplitCash(gross[cat], credits[cat])
	}

	consumed := t.TotalCreditCard + pay.BankayaGonderilen + pay.ErtesiGuneBirakilan
	t.CashInRegister = pay.GunbasiNakit + t.TotalSales - consumed
	t.Difference = t.TotalSales - (pay.GunbasiNakit + consumed)
	return t
}

// ValidateCredits kategori kredi tutarlarını denetler: bilinmeyen kategori,
// negatif tutar veya kategori brüt toplamını aşan tutar reddedilir.
// Aşan tutara izin verilseydi taban onu "kayıp nakit" olarak yutar,
// totalCash ile totalSales−totalCreditCard birbirinden kopardı.
func (v Variant) ValidateCredits(products map[string]float64, credits map[Category]Kurus) error {
	gross := v.GrossTotals(products)
	for cat, amount := range credits {
		if !v.HasCategory(cat) {
			return fmt.Errorf("bilinmeyen kategori: %s", cat)
		}
		if amount < 0 {
			return fmt.Errorf("%s kategorisi için kredi kartı tutarı negatif olamaz", cat)
		}
		if amount > gross[cat] {
			return fmt.Errorf("%s kategorisi için kredi kartı tutarı kategori toplamını aşamaz", cat)
		}
	}
	return nil
}

// CrossCheck bir kategorinin hesaplanan nakit payı ile sayılan kupür
// toplamının karşılaştırması. Kuruş aritmetiği sayesinde tolerans gerekmez:
// bir kuruşluk sapma bile uyuşmazlıktır. Uyarı amaçlıdır, teslimi engellemez.
type CrossCheck struct {
	Category Category `json:"category"`
	Expected Kurus    `json:"-"` // hesaplanan nakit payı
	Counted  Kurus    `json:"-"` // sayılan kupür toplamı
	Delta    Kurus    `json:"-"` // expected − counted
	Mismatch bool     `json:"mismatch"`
}

// CrossChecks kupür sayımı tutulan her kategori için karşılaştırma üretir.
func (v Variant) CrossChecks(products map[string]float64, credits map[Category]Kurus, banknotes map[Category]BanknoteCount) []CrossCheck {
	gross := v.GrossTotals(products)

	checks := make([]CrossCheck, 0, len(v.BanknoteCategories))
	for _, cat := range v.BanknoteCategories {
		expected := SplitCash(gross[cat], credits[cat])
		counted := banknotes[cat].Total()
		checks = append(checks, CrossCheck{
			Category: cat,
			Expected: expected,
			Counted:  counted,
			Delta:    expected - counted,
			Mismatch: expected != counted,
		})
	}
	return checks
}
