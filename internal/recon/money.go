package recon

import (
	"fmt"
	"math"
)

// Kurus: tüm para tutarları kuruş cinsinden tam sayı tutulur (1 TL = 100 kuruş).
// Float aritmetiği sadece JSON sınırında, Lira/FromLira dönüşümlerinde kullanılır.
type Kurus int64

// FromLira TL cinsinden bir tutarı kuruşa çevirir (en yakın kuruşa yuvarlar).
func FromLira(v float64) Kurus {
	return Kurus(math.Round(v * 100))
}

// Lira kuruş tutarını JSON'da kullanılan TL float değerine çevirir.
func (k Kurus) Lira() float64 {
	return float64(k) / 100
}

// String "123.45" biçiminde TL gösterimi üretir (pusula ve log çıktıları için).
func (k Kurus) String() string {
	sign := ""
	v := k
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
