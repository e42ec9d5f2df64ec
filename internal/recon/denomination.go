package recon

// BanknoteCount bir kategori için fiziksel kupür sayımı.
// JSON alan adları orijinal kasa formuyla birebir aynıdır.
type BanknoteCount struct {
	B200 int `json:"b200"` // 200 TL
	B100 int `json:"b100"` // 100 TL
	B50  int `json:"b50"`  // 50 TL
	B20  int `json:"b20"`  // 20 TL
	B10  int `json:"b10"`  // 10 TL
	B5   int `json:"b5"`   // 5 TL
	C1   int `json:"c1"`   // 1 TL
	C050 int `json:"c050"` // 50 kuruş
}

// DenomLine pusula satırı: kupür etiketi, adet, birim değer.
type DenomLine struct {
	Label string
	Count int
	Value Kurus
}

// Lines kupürleri büyükten küçüğe sıralı döndürür. Negatif adetler
// sayım hatası kabul edilir ve sıfıra sabitlenir; toplam asla negatif olmaz.
func (b BanknoteCount) Lines() []DenomLine {
	return []DenomLine{
		{"200 TL", clampCount(b.B200), 20000},
		{"100 TL", clampCount(b.B100), 10000},
		{"50 TL", clampCount(b.B50), 5000},
		{"20 TL", clampCount(b.B20), 2000},
		{"10 TL", clampCount(b.B10), 1000},
		{"5 TL", clampCount(b.B5), 500},
		{"1 TL", clampCount(b.C1), 100},
		{"50 Kuruş", clampCount(b.C050), 50},
	}
}

// Total sayılan nakdin kuruş toplamı: Σ adet × kupür değeri.
func (b BanknoteCount) Total() Kurus {
	var total Kurus
	for _, line := range b.Lines() {
		total += Kurus(line.Count) * line.Value
	}
	return total
}

// IsZero hiç kupür girilmemişse true döner.
func (b BanknoteCount) IsZero() bool {
	return b.Total() == 0
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
