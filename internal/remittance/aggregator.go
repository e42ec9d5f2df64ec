package remittance

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"gise-backend/internal/models"
	"gise-backend/internal/recon"
)

// Entry bankaya nakit gönderimi içeren bir teslim kaydının rapor görünümü.
// İki kayıt türü aynı listede birleşir; RecordType kökeni taşır.
type Entry struct {
	ID               uint
	RecordType       string
	Date             time.Time
	Status           models.SubmissionStatus
	BankSentCash     map[recon.Category]recon.Kurus
	TotalSent        recon.Kurus
	Banknotes        map[recon.Category]recon.BanknoteCount
	SubmittedByEmail string
	SubmittedAt      time.Time
	ReviewedByEmail  string
	ReviewedByRole   string
	ReviewAction     string
	ReviewNotes      string
	ReviewedAt       *time.Time
}

// CategoryTotals filtrelenen kayıtlar üzerinden kategori bazlı ve genel
// bankaya gönderim toplamları.
type CategoryTotals struct {
	Dolum recon.Kurus
	Kart  recon.Kurus
	Vize  recon.Kurus
	Grand recon.Kurus
}

// EntryFromSubmission kaydın jsonb bloklarını açar. Bankaya gönderim bloğu
// kayıt anındaki anlık görüntüdür; kupür toplamından farklı olabilir.
func EntryFromSubmission(sub models.Submission) (Entry, error) {
	e := Entry{
		ID:               sub.ID,
		RecordType:       sub.RecordType,
		Date:             sub.Date,
		Status:           sub.Status,
		BankSentCash:     map[recon.Category]recon.Kurus{},
		Banknotes:        map[recon.Category]recon.BanknoteCount{},
		SubmittedByEmail: sub.SubmittedByEmail,
		SubmittedAt:      sub.SubmittedAt,
		ReviewedByEmail:  sub.ReviewedByEmail,
		ReviewedByRole:   sub.ReviewedByRole,
		ReviewAction:     sub.ReviewAction,
		ReviewNotes:      sub.ReviewNotes,
		ReviewedAt:       sub.ReviewedAt,
	}

	if sub.BankSentCash != "" {
		if err := json.Unmarshal([]byte(sub.BankSentCash), &e.BankSentCash); err != nil {
			return Entry{}, fmt.Errorf("bankaya gönderim bloğu çözümlenemedi: %w", err)
		}
	}
	if sub.Banknotes != "" {
		if err := json.Unmarshal([]byte(sub.Banknotes), &e.Banknotes); err != nil {
			return Entry{}, fmt.Errorf("kupür bloğu çözümlenemedi: %w", err)
		}
	}

	for _, amount := range e.BankSentCash {
		e.TotalSent += amount
	}
	return e, nil
}

// HasBankSentCash en az bir kategoride sıfırdan büyük gönderim var mı?
// Filtre koşulu budur; tamamı sıfır olan kayıtlar listeye girmez.
func (e Entry) HasBankSentCash() bool {
	for _, amount := range e.BankSentCash {
		if amount > 0 {
			return true
		}
	}
	return false
}

// Aggregate her iki kayıt türünün teslim kayıtlarından bankaya gönderim
// raporunu üretir: filtrelenmiş, tarihe göre azalan liste ve toplamlar.
// Çözümlenemeyen kayıt atlanır, rapor geri kalanıyla üretilir.
func Aggregate(subs []models.Submission) ([]Entry, CategoryTotals) {
	entries := make([]Entry, 0, len(subs))
	var totals CategoryTotals

	for _, sub := range subs {
		e, err := EntryFromSubmission(sub)
		if err != nil {
			log.Printf("Kayıt %d rapora alınamadı: %v", sub.ID, err)
			continue
		}
		if !e.HasBankSentCash() {
			continue
		}

		totals.Dolum += e.BankSentCash[recon.CategoryDolum]
		totals.Kart += e.BankSentCash[recon.CategoryKart]
		totals.Vize += e.BankSentCash[recon.CategoryVize]
		entries = append(entries, e)
	}
	totals.Grand = totals.Dolum + totals.Kart + totals.Vize

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID > entries[j].ID
	})

	return entries, totals
}
