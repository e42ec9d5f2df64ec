package submission

import (
	"encoding/json"
	"fmt"
	"time"

	"gise-backend/internal/models"
	"gise-backend/internal/recon"
)

type PaymentsRequest struct {
	GunbasiNakit        float64 `json:"gunbasiNakit"`
	BankayaGonderilen   float64 `json:"bankayaGonderilen"`
	ErtesiGuneBirakilan float64 `json:"ertesiGuneBirakilan"`
}

// SubmitRequest hem POST /submit hem PUT /submitted/:id gövdesi.
// Tutarlar istemci tarafında TL float'tır, sınırda kuruşa çevrilir.
type SubmitRequest struct {
	Date                string                         `json:"date"`
	Products            map[string]float64             `json:"products"`
	CategoryCreditCards map[string]float64             `json:"categoryCreditCards"`
	Payments            PaymentsRequest                `json:"payments"`
	Banknotes           map[string]recon.BanknoteCount `json:"banknotes"`
	BankSentCash        map[string]float64             `json:"bankSentCash"`
}

// payload doğrulanmış ve kuruşa çevrilmiş teslim verisi.
type payload struct {
	date      time.Time
	products  map[string]float64
	credits   map[recon.Category]recon.Kurus
	payments  recon.Payments
	banknotes map[recon.Category]recon.BanknoteCount
	bankSent  map[recon.Category]recon.Kurus
	totals    recon.Totals
}

// parseSubmitRequest istek gövdesini doğrular, normalize eder ve toplamları
// hesaplar. İstemcinin form sınırlamasına güvenilmez: negatif değerler,
// bilinmeyen anahtarlar ve kategori toplamını aşan kredi tutarları reddedilir.
func parseSubmitRequest(v recon.Variant, body SubmitRequest) (payload, error) {
	var p payload

	if body.Date == "" {
		return p, fmt.Errorf("tarih zorunlu")
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return p, fmt.Errorf("tarih formatı geçersiz, 'YYYY-MM-DD' olmalı")
	}
	p.date = date

	if err := v.ValidateProducts(body.Products); err != nil {
		return p, err
	}
	p.products = body.Products
	if p.products == nil {
		p.products = map[string]float64{}
	}

	p.credits = make(map[recon.Category]recon.Kurus, len(body.CategoryCreditCards))
	for key, amount := range body.CategoryCreditCards {
		p.credits[recon.Category(key)] = recon.FromLira(amount)
	}
	if err := v.ValidateCredits(p.products, p.credits); err != nil {
		return p, err
	}

	p.payments = recon.Payments{
		GunbasiNakit:        recon.FromLira(body.Payments.GunbasiNakit),
		BankayaGonderilen:   recon.FromLira(body.Payments.BankayaGonderilen),
		ErtesiGuneBirakilan: recon.FromLira(body.Payments.ErtesiGuneBirakilan),
	}
	if err := p.payments.Validate(); err != nil {
		return p, err
	}

	p.banknotes = make(map[recon.Category]recon.BanknoteCount, len(v.BanknoteCategories))
	for key, counts := range body.Banknotes {
		cat := recon.Category(key)
		if !v.HasBanknoteCategory(cat) {
			return p, fmt.Errorf("bilinmeyen kupür kategorisi: %s", key)
		}
		p.banknotes[cat] = counts
	}

	// BankSentCash anlık görüntüdür: kupür toplamına eşit olması beklenir ama
	// zorunlu tutulmaz (gönderim sonrası kupür düzenlenmiş olabilir).
	p.bankSent = make(map[recon.Category]recon.Kurus, len(body.BankSentCash))
	for key, amount := range body.BankSentCash {
		cat := recon.Category(key)
		if !v.HasBanknoteCategory(cat) {
			return p, fmt.Errorf("bilinmeyen bankaya gönderim kategorisi: %s", key)
		}
		if amount < 0 {
			return p, fmt.Errorf("%s kategorisi için bankaya gönderilen tutar negatif olamaz", key)
		}
		p.bankSent[cat] = recon.FromLira(amount)
	}

	p.totals = v.ComputeTotals(p.products, p.credits, p.payments)
	return p, nil
}

// apply payload'ı kayda yazar. Tüm ham bloklar tam olarak değiştirilir;
// kısmi güncelleme yoktur.
func (p payload) apply(sub *models.Submission) error {
	productsJSON, err := json.Marshal(p.products)
	if err != nil {
		return err
	}
	creditsJSON, err := json.Marshal(p.credits)
	if err != nil {
		return err
	}
	banknotesJSON, err := json.Marshal(p.banknotes)
	if err != nil {
		return err
	}
	bankSentJSON, err := json.Marshal(p.bankSent)
	if err != nil {
		return err
	}

	sub.Date = p.date
	sub.Products = string(productsJSON)
	sub.CategoryCreditCards = string(creditsJSON)
	sub.Banknotes = string(banknotesJSON)
	sub.BankSentCash = string(bankSentJSON)
	sub.GunbasiNakit = int64(p.payments.GunbasiNakit)
	sub.BankayaGonderilen = int64(p.payments.BankayaGonderilen)
	sub.ErtesiGuneBirakilan = int64(p.payments.ErtesiGuneBirakilan)
	sub.TotalSales = int64(p.totals.TotalSales)
	sub.TotalCreditCard = int64(p.totals.TotalCreditCard)
	sub.TotalCash = int64(p.totals.TotalCash)
	sub.CashInRegister = int64(p.totals.CashInRegister)
	sub.Difference = int64(p.totals.Difference)
	return nil
}

type TotalsResponse struct {
	TotalSales      float64 `json:"totalSales"`
	TotalCreditCard float64 `json:"totalCreditCard"`
	TotalCash       float64 `json:"totalCash"`
	CashInRegister  float64 `json:"cashInRegister"`
	Difference      float64 `json:"difference"`
}

// CrossCheckResponse uyarı amaçlı kupür karşılaştırması; teslimi engellemez.
type CrossCheckResponse struct {
	Category   string  `json:"category"`
	Expected   float64 `json:"expected"` // hesaplanan nakit payı
	Counted    float64 `json:"counted"`  // sayılan kupür toplamı
	Difference float64 `json:"difference"`
	Mismatch   bool    `json:"mismatch"`
}

type SubmissionResponse struct {
	ID                  uint                           `json:"id"`
	RecordType          string                         `json:"recordType"`
	Date                string                         `json:"date"`
	Products            map[string]float64             `json:"products"`
	CategoryCreditCards map[string]float64             `json:"categoryCreditCards"`
	Payments            PaymentsRequest                `json:"payments"`
	Banknotes           map[string]recon.BanknoteCount `json:"banknotes"`
	BankSentCash        map[string]float64             `json:"bankSentCash"`
	Totals              TotalsResponse                 `json:"totals"`
	CrossChecks         []CrossCheckResponse           `json:"crossChecks"`
	SubmittedBy         uint                           `json:"submittedBy"`
	SubmittedByEmail    string                         `json:"submittedByEmail"`
	SubmittedAt         string                         `json:"submittedAt"`
	Status              models.SubmissionStatus        `json:"status"`
	ReviewedByEmail     string                         `json:"reviewedByEmail,omitempty"`
	ReviewedByRole      string                         `json:"reviewedByRole,omitempty"`
	ReviewAction        string                         `json:"reviewAction,omitempty"`
	ReviewNotes         string                         `json:"reviewNotes,omitempty"`
	ReviewedAt          string                         `json:"reviewedAt,omitempty"`
}

// toResponse kayıttaki jsonb blokları açar ve tutarları TL'ye çevirir.
// bankSentCash içine orijinal kayıtlardaki gibi türetilmiş totalSent eklenir.
func toResponse(sub models.Submission) (SubmissionResponse, error) {
	var products map[string]float64
	if err := json.Unmarshal([]byte(sub.Products), &products); err != nil {
		return SubmissionResponse{}, fmt.Errorf("ürün bloğu çözümlenemedi: %w", err)
	}

	var credits map[recon.Category]recon.Kurus
	if err := json.Unmarshal([]byte(sub.CategoryCreditCards), &credits); err != nil {
		return SubmissionResponse{}, fmt.Errorf("kredi kartı bloğu çözümlenemedi: %w", err)
	}

	banknotes := map[string]recon.BanknoteCount{}
	if sub.Banknotes != "" {
		if err := json.Unmarshal([]byte(sub.Banknotes), &banknotes); err != nil {
			return SubmissionResponse{}, fmt.Errorf("kupür bloğu çözümlenemedi: %w", err)
		}
	}

	bankSent := map[recon.Category]recon.Kurus{}
	if sub.BankSentCash != "" {
		if err := json.Unmarshal([]byte(sub.BankSentCash), &bankSent); err != nil {
			return SubmissionResponse{}, fmt.Errorf("bankaya gönderim bloğu çözümlenemedi: %w", err)
		}
	}

	creditsTL := make(map[string]float64, len(credits))
	for cat, amount := range credits {
		creditsTL[string(cat)] = amount.Lira()
	}

	var totalSent recon.Kurus
	bankSentTL := make(map[string]float64, len(bankSent)+1)
	for cat, amount := range bankSent {
		bankSentTL[string(cat)] = amount.Lira()
		totalSent += amount
	}
	bankSentTL["totalSent"] = totalSent.Lira()

	v, err := recon.VariantFor(sub.RecordType)
	if err != nil {
		return SubmissionResponse{}, err
	}

	banknotesTyped := make(map[recon.Category]recon.BanknoteCount, len(banknotes))
	for key, counts := range banknotes {
		banknotesTyped[recon.Category(key)] = counts
	}
	checks := v.CrossChecks(products, credits, banknotesTyped)
	checksResp := make([]CrossCheckResponse, 0, len(checks))
	for _, ch := range checks {
		checksResp = append(checksResp, CrossCheckResponse{
			Category:   string(ch.Category),
			Expected:   ch.Expected.Lira(),
			Counted:    ch.Counted.Lira(),
			Difference: ch.Delta.Lira(),
			Mismatch:   ch.Mismatch,
		})
	}

	resp := SubmissionResponse{
		ID:                  sub.ID,
		RecordType:          sub.RecordType,
		Date:                sub.Date.Format("2006-01-02"),
		Products:            products,
		CategoryCreditCards: creditsTL,
		Payments: PaymentsRequest{
			GunbasiNakit:        recon.Kurus(sub.GunbasiNakit).Lira(),
			BankayaGonderilen:   recon.Kurus(sub.BankayaGonderilen).Lira(),
			ErtesiGuneBirakilan: recon.Kurus(sub.ErtesiGuneBirakilan).Lira(),
		},
		Banknotes:    banknotes,
		BankSentCash: bankSentTL,
		Totals: TotalsResponse{
			TotalSales:      recon.Kurus(sub.TotalSales).Lira(),
			TotalCreditCard: recon.Kurus(sub.TotalCreditCard).Lira(),
			TotalCash:       recon.Kurus(sub.TotalCash).Lira(),
			CashInRegister:  recon.Kurus(sub.CashInRegister).Lira(),
			Difference:      recon.Kurus(sub.Difference).Lira(),
		},
		CrossChecks:      checksResp,
		SubmittedBy:      sub.SubmittedBy,
		SubmittedByEmail: sub.SubmittedByEmail,
		SubmittedAt:      sub.SubmittedAt.Format(time.RFC3339),
		Status:           sub.Status,
		ReviewedByEmail:  sub.ReviewedByEmail,
		ReviewedByRole:   sub.ReviewedByRole,
		ReviewAction:     sub.ReviewAction,
		ReviewNotes:      sub.ReviewNotes,
	}
	if sub.ReviewedAt != nil {
		resp.ReviewedAt = sub.ReviewedAt.Format(time.RFC3339)
	}
	return resp, nil
}
