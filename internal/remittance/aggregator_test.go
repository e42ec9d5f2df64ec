package remittance

import (
	"testing"
	"time"

	"gise-backend/internal/models"
	"gise-backend/internal/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionWith(id uint, recordType string, date time.Time, bankSent string) models.Submission {
	return models.Submission{
		ID:                  id,
		RecordType:          recordType,
		Date:                date,
		Products:            "{}",
		CategoryCreditCards: "{}",
		Banknotes:           "{}",
		BankSentCash:        bankSent,
		Status:              models.StatusSubmitted,
		SubmittedByEmail:    "gise@example.com",
	}
}

func TestAggregateFiltersAndTotals(t *testing.T) {
	day := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)

	subs := []models.Submission{
		// desk: dolum 20 TL gönderim
		submissionWith(1, "desk", day, `{"dolum":2000,"kart":0}`),
		// bayi: kart 15 TL gönderim
		submissionWith(2, "bayi-dolum", day.AddDate(0, 0, 1), `{"dolum":0,"kart":1500}`),
		// tamamı sıfır: listeye girmez
		submissionWith(3, "desk", day, `{"dolum":0,"kart":0,"vize":0}`),
		// boş blok: listeye girmez
		submissionWith(4, "bayi-dolum", day, ""),
	}

	entries, totals := Aggregate(subs)

	require.Len(t, entries, 2)
	// tarih azalan: bayi (10 Aralık) önce
	assert.Equal(t, uint(2), entries[0].ID)
	assert.Equal(t, "bayi-dolum", entries[0].RecordType)
	assert.Equal(t, uint(1), entries[1].ID)

	assert.Equal(t, recon.Kurus(2000), totals.Dolum)
	assert.Equal(t, recon.Kurus(1500), totals.Kart)
	assert.Equal(t, recon.Kurus(0), totals.Vize)
	assert.Equal(t, recon.Kurus(3500), totals.Grand) // 20 + 15 = 35 TL
}

func TestAggregateSameDateOrdersByIDDesc(t *testing.T) {
	day := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)
	subs := []models.Submission{
		submissionWith(5, "desk", day, `{"dolum":100}`),
		submissionWith(9, "desk", day, `{"dolum":100}`),
	}

	entries, _ := Aggregate(subs)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(9), entries[0].ID)
	assert.Equal(t, uint(5), entries[1].ID)
}

func TestAggregateSkipsMalformedRecords(t *testing.T) {
	day := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)
	subs := []models.Submission{
		submissionWith(1, "desk", day, `bozuk json`),
		submissionWith(2, "desk", day, `{"kart":500}`),
	}

	entries, totals := Aggregate(subs)
	require.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].ID)
	assert.Equal(t, recon.Kurus(500), totals.Grand)
}

func TestEntryFromSubmissionTotalSent(t *testing.T) {
	sub := submissionWith(1, "desk", time.Now(), `{"dolum":2000,"kart":1500,"vize":50}`)
	sub.Banknotes = `{"dolum":{"b10":2},"kart":{"b10":1,"b5":1}}`

	e, err := EntryFromSubmission(sub)
	require.NoError(t, err)

	assert.Equal(t, recon.Kurus(3550), e.TotalSent)
	assert.True(t, e.HasBankSentCash())
	assert.Equal(t, recon.Kurus(2000), e.Banknotes[recon.CategoryDolum].Total())
}

func TestBuildPusulaLayout(t *testing.T) {
	e := Entry{
		ID:         1,
		RecordType: "desk",
		Date:       time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		BankSentCash: map[recon.Category]recon.Kurus{
			recon.CategoryDolum: 2000,
			recon.CategoryKart:  5000,
		},
		Banknotes: map[recon.Category]recon.BanknoteCount{
			recon.CategoryDolum: {B20: 1},
			recon.CategoryKart:  {B50: 1},
		},
		SubmittedByEmail: "gise@example.com",
	}

	f, filename, err := BuildPusula(e)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Pusula_Desk_20251209.xlsx", filename)

	rows, err := f.GetRows(pusulaSheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "BANKA PUSULA RAPORU", rows[0][0])

	// desk kaydında üç kategori bölümü ve genel toplam bulunmalı
	var labels []string
	for _, row := range rows {
		if len(row) > 0 {
			labels = append(labels, row[0])
		}
	}
	assert.Contains(t, labels, "--- DOLUM ---")
	assert.Contains(t, labels, "--- KART ---")
	assert.Contains(t, labels, "--- VİZE ---")
	assert.Contains(t, labels, "=== GENEL TOPLAM ===")

	// genel toplam = gönderilen tutarlar toplamı (20 + 50 = 70 TL)
	var grandRow []string
	for _, row := range rows {
		if len(row) > 0 && row[0] == "=== GENEL TOPLAM ===" {
			grandRow = row
		}
	}
	require.Len(t, grandRow, 4)
	assert.Equal(t, "70", grandRow[3])
}

func TestBuildBulkPusulaEmpty(t *testing.T) {
	_, _, err := BuildBulkPusula(nil)
	assert.Error(t, err)
}

func TestBuildBulkPusulaConsolidatedTotals(t *testing.T) {
	day := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)
	entries := []Entry{
		{
			ID: 1, RecordType: "desk", Date: day,
			BankSentCash:     map[recon.Category]recon.Kurus{recon.CategoryDolum: 2000},
			SubmittedByEmail: "desk@example.com",
		},
		{
			ID: 2, RecordType: "bayi-dolum", Date: day,
			BankSentCash:     map[recon.Category]recon.Kurus{recon.CategoryKart: 1500},
			SubmittedByEmail: "bayi@example.com",
		},
	}

	f, filename, err := BuildBulkPusula(entries)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, filename, "Pusula_Toplu_")

	rows, err := f.GetRows(pusulaSheet)
	require.NoError(t, err)

	find := func(label string) []string {
		for _, row := range rows {
			if len(row) > 0 && row[0] == label {
				return row
			}
		}
		return nil
	}

	dolumRow := find("Toplam Dolum:")
	require.Len(t, dolumRow, 4)
	assert.Equal(t, "20", dolumRow[3])

	kartRow := find("Toplam Kart:")
	require.Len(t, kartRow, 4)
	assert.Equal(t, "15", kartRow[3])

	// vize sıfır: satırı yazılmaz
	assert.Nil(t, find("Toplam Vize:"))

	grandRow := find("GENEL TOPLAM:")
	require.Len(t, grandRow, 4)
	assert.Equal(t, "35", grandRow[3])
}
