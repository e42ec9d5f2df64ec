package recon

import "fmt"

// RecordType kayıt türü ayracı. Desk ve bayi kayıtları aynı iş akışını
// paylaşır ama ürün/kategori kümeleri ve birim fiyatları farklıdır.
// Tür her zaman oluşturma anında açıkça set edilir, alan varlığından çıkarılmaz.
type RecordType string

const (
	RecordTypeDesk RecordType = "desk"
	RecordTypeBayi RecordType = "bayi-dolum"
)

// Category bir kredi/nakit ayrımını ve bir kupür sayımını paylaşan ürün grubu.
type Category string

const (
	CategoryDolum      Category = "dolum"
	CategoryKart       Category = "kart"
	CategoryVize       Category = "vize"
	CategoryKartKilifi Category = "kartKilifi"
)

type product struct {
	Category  Category
	UnitPrice Kurus // birim fiyat sabittir, kayıt başına saklanmaz
}

// Variant bir kayıt türünün statik konfigürasyonu: ürünler, kategoriler,
// birim fiyatlar ve kupür sayımı tutulan kategoriler.
type Variant struct {
	Type RecordType
	// Categories kredi/nakit ayrımı yapılan tüm kategoriler (sıralı).
	Categories []Category
	// BanknoteCategories kupür sayımı ve bankaya gönderim yapılan kategoriler.
	// Desk'te kartKilifi için kupür sayımı tutulmaz.
	BanknoteCategories []Category
	products           map[string]product
}

// Desk gişe işlemleri: 7 ürün, 4 kategori, 3 kupür kategorisi.
var Desk = Variant{
	Type:               RecordTypeDesk,
	Categories:         []Category{CategoryDolum, CategoryKart, CategoryVize, CategoryKartKilifi},
	BanknoteCategories: []Category{CategoryDolum, CategoryKart, CategoryVize},
	products: map[string]product{
		"dolum":         {CategoryDolum, 100},
		"tamKart":       {CategoryKart, 5000},
		"indirimliKart": {CategoryKart, 10000},
		"serbestKart":   {CategoryKart, 10000},
		"serbestVize":   {CategoryVize, 7500},
		"indirimliVize": {CategoryVize, 2500},
		"kartKilifi":    {CategoryKartKilifi, 1000},
	},
}

// BayiDolum bayi dolum işlemleri: 4 ürün, 2 kategori.
var BayiDolum = Variant{
	Type:               RecordTypeBayi,
	Categories:         []Category{CategoryDolum, CategoryKart},
	BanknoteCategories: []Category{CategoryDolum, CategoryKart},
	products: map[string]product{
		"bayiDolum":     {CategoryDolum, 100},
		"bayiTamKart":   {CategoryKart, 5000},
		"bayiKartKilifi": {CategoryKart, 2000},
		"posRulosu":     {CategoryKart, 1000},
	},
}

// VariantFor URL'deki kayıt türünden varyantı çözer.
func VariantFor(recordType string) (Variant, error) {
	switch RecordType(recordType) {
	case RecordTypeDesk:
		return Desk, nil
	case RecordTypeBayi:
		return BayiDolum, nil
	}
	return Variant{}, fmt.Errorf("bilinmeyen kayıt türü: %s", recordType)
}

// HasCategory kategori bu varyantta tanımlı mı?
func (v Variant) HasCategory(cat Category) bool {
	for _, c := range v.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// HasBanknoteCategory kategori için kupür sayımı tutuluyor mu?
func (v Variant) HasBanknoteCategory(cat Category) bool {
	for _, c := range v.BanknoteCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// UnitPrice ürünün sabit birim fiyatı. Bilinmeyen ürün için ok=false döner.
func (v Variant) UnitPrice(productKey string) (Kurus, bool) {
	p, ok := v.products[productKey]
	if !ok {
		return 0, false
	}
	return p.UnitPrice, true
}

// ValidateProducts bilinmeyen ürün anahtarı veya negatif adet olup olmadığını
// denetler. Sunucu, istemcinin form doğrulamasına güvenmez.
func (v Variant) ValidateProducts(products map[string]float64) error {
	for key, qty := range products {
		if _, ok := v.products[key]; !ok {
			return fmt.Errorf("bilinmeyen ürün: %s", key)
		}
		if qty < 0 {
			return fmt.Errorf("ürün adedi negatif olamaz: %s", key)
		}
	}
	return nil
}
