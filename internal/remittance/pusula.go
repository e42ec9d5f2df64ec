package remittance

import (
	"fmt"
	"time"

	"gise-backend/internal/recon"

	"github.com/xuri/excelize/v2"
)

const pusulaSheet = "Pusula"

type pusulaCategory struct {
	Key   recon.Category
	Label string
}

// pusulaCategories kayıt türüne göre pusulada yer alan kategoriler.
// Bayi kayıtlarında vize kategorisi yoktur.
func pusulaCategories(recordType string) []pusulaCategory {
	cats := []pusulaCategory{
		{recon.CategoryDolum, "DOLUM"},
		{recon.CategoryKart, "KART"},
	}
	if recordType == string(recon.RecordTypeDesk) {
		cats = append(cats, pusulaCategory{recon.CategoryVize, "VİZE"})
	}
	return cats
}

func recordTypeLabel(recordType string) string {
	if recordType == string(recon.RecordTypeDesk) {
		return "Desk İşlemleri"
	}
	return "Bayi Dolum"
}

// sheetWriter satır satır yazan küçük yardımcı; excelize hücre adresi
// üretimini tek yerde toplar.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) write(cells ...interface{}) {
	w.row++
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(pusulaSheet, cell, &cells)
}

func (w *sheetWriter) blank() {
	w.row++
}

// writeCategory bir kategorinin kupür dökümünü yazar ve kategori kupür
// toplamını döndürür. Kupür toplamı ile bankaya gönderilen tutar ayrı
// satırlardır; anlık görüntü sonradan düzenlenen sayımdan sapabilir.
func (w *sheetWriter) writeCategory(cat pusulaCategory, counts recon.BanknoteCount, bankSent recon.Kurus) recon.Kurus {
	w.write(fmt.Sprintf("--- %s ---", cat.Label))
	w.write("Kupür", "Adet", "Birim Değer (TL)", "Toplam (TL)")

	var categoryTotal recon.Kurus
	for _, line := range counts.Lines() {
		if line.Count == 0 {
			continue
		}
		subtotal := recon.Kurus(line.Count) * line.Value
		categoryTotal += subtotal
		w.write(line.Label, line.Count, line.Value.Lira(), subtotal.Lira())
	}
	if categoryTotal == 0 {
		w.write("(Kupür verisi yok)", "", "", "")
	}

	w.blank()
	w.write(fmt.Sprintf("%s Kupür Toplamı:", cat.Label), "", "", categoryTotal.Lira())
	w.write(fmt.Sprintf("%s Bankaya Gönderilen:", cat.Label), "", "", bankSent.Lira())
	w.blank()
	return categoryTotal
}

func newPusulaFile(labelWidth float64) (*excelize.File, *sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", pusulaSheet); err != nil {
		f.Close()
		return nil, nil, err
	}
	if err := f.SetColWidth(pusulaSheet, "A", "A", labelWidth); err != nil {
		f.Close()
		return nil, nil, err
	}
	if err := f.SetColWidth(pusulaSheet, "B", "B", 10); err != nil {
		f.Close()
		return nil, nil, err
	}
	if err := f.SetColWidth(pusulaSheet, "C", "D", 18); err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, &sheetWriter{f: f}, nil
}

// BuildPusula tek kayıt için banka pusula dosyası üretir.
// Dosya adı kayıt türünü ve tarihi taşır: Pusula_Desk_20251209.xlsx
func BuildPusula(e Entry) (*excelize.File, string, error) {
	f, w, err := newPusulaFile(30)
	if err != nil {
		return nil, "", err
	}

	w.write("BANKA PUSULA RAPORU")
	w.blank()
	w.write("Tarih:", e.Date.Format("02.01.2006"))
	w.write("Tip:", recordTypeLabel(e.RecordType))
	w.write("Gönderen:", e.SubmittedByEmail)
	w.blank()

	var grandTotal recon.Kurus
	for _, cat := range pusulaCategories(e.RecordType) {
		w.writeCategory(cat, e.Banknotes[cat.Key], e.BankSentCash[cat.Key])
		grandTotal += e.BankSentCash[cat.Key]
	}

	w.write("=== GENEL TOPLAM ===", "", "", grandTotal.Lira())

	if w.err != nil {
		f.Close()
		return nil, "", w.err
	}

	typeStr := "BayiDolum"
	if e.RecordType == string(recon.RecordTypeDesk) {
		typeStr = "Desk"
	}
	filename := fmt.Sprintf("Pusula_%s_%s.xlsx", typeStr, e.Date.Format("20060102"))
	return f, filename, nil
}

// BuildBulkPusula birden çok kaydı tek sayfada art arda döker; her kayıt
// ayraçla başlar, sonda kategori bazlı konsolide genel toplam yer alır.
func BuildBulkPusula(entries []Entry) (*excelize.File, string, error) {
	if len(entries) == 0 {
		return nil, "", fmt.Errorf("dışa aktarılacak kayıt bulunamadı")
	}

	f, w, err := newPusulaFile(45)
	if err != nil {
		return nil, "", err
	}

	w.write("BANKA PUSULA RAPORU - TOPLU")
	w.blank()
	w.write("Oluşturma Tarihi:", time.Now().Format("02.01.2006"))
	w.write("Toplam Kayıt:", len(entries))
	w.blank()

	var totals CategoryTotals
	for i, e := range entries {
		w.write("════════════════════════════════════════")
		w.write(fmt.Sprintf("KAYIT %d: %s - %s - %s",
			i+1, e.Date.Format("02.01.2006"), recordTypeLabel(e.RecordType), e.SubmittedByEmail))
		w.blank()

		var recordTotal recon.Kurus
		for _, cat := range pusulaCategories(e.RecordType) {
			w.writeCategory(cat, e.Banknotes[cat.Key], e.BankSentCash[cat.Key])

			sent := e.BankSentCash[cat.Key]
			switch cat.Key {
			case recon.CategoryDolum:
				totals.Dolum += sent
			case recon.CategoryKart:
				totals.Kart += sent
			case recon.CategoryVize:
				totals.Vize += sent
			}
			recordTotal += sent
		}

		w.write(fmt.Sprintf("KAYIT %d TOPLAMI:", i+1), "", "", recordTotal.Lira())
		w.blank()
	}
	totals.Grand = totals.Dolum + totals.Kart + totals.Vize

	w.write("════════════════════════════════════════")
	w.blank()
	w.write("=== GENEL TOPLAM ===")
	w.write("Toplam Dolum:", "", "", totals.Dolum.Lira())
	w.write("Toplam Kart:", "", "", totals.Kart.Lira())
	if totals.Vize > 0 {
		w.write("Toplam Vize:", "", "", totals.Vize.Lira())
	}
	w.write("GENEL TOPLAM:", "", "", totals.Grand.Lira())

	if w.err != nil {
		f.Close()
		return nil, "", w.err
	}

	filename := fmt.Sprintf("Pusula_Toplu_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
