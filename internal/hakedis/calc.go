package hakedis

import (
	"fmt"
	"sort"

	"gise-backend/internal/models"
	"gise-backend/internal/recon"
)

// Amounts hat ve araç bazlı tutar haritaları (kuruş).
type Amounts struct {
	Routes   map[string]recon.Kurus
	Vehicles map[string]recon.Kurus
}

// Total hakediş toplamı: hat tutarları + araç tutarları.
func (a Amounts) Total() recon.Kurus {
	var total recon.Kurus
	for _, v := range a.Routes {
		total += v
	}
	for _, v := range a.Vehicles {
		total += v
	}
	return total
}

// Validate negatif tutar kabul edilmez; araç anahtarları araç numarasıdır.
func (a Amounts) Validate() error {
	for route, v := range a.Routes {
		if route == "" {
			return fmt.Errorf("hat adı boş olamaz")
		}
		if v < 0 {
			return fmt.Errorf("%s hattı için tutar negatif olamaz", route)
		}
	}
	for vehicle, v := range a.Vehicles {
		if v < 0 {
			return fmt.Errorf("%s aracı için tutar negatif olamaz", vehicle)
		}
	}
	return nil
}

// typeShare bir hakediş tipinin araca düşen payları.
type typeShare struct {
	RouteAmount   recon.Kurus
	VehicleAmount recon.Kurus
}

func (s typeShare) total() recon.Kurus { return s.RouteAmount + s.VehicleAmount }

// VehicleSummary dönem özetinde tek aracın satırı.
type VehicleSummary struct {
	VehicleNumber int
	PlateNumber   string
	RouteName     string
	IBAN          string
	TaxID         string
	Haftalik      typeShare
	KrediKarti    typeShare
	GrandTotal    recon.Kurus
}

// SummaryTotals tüm araçlar üzerinden tip bazlı toplamlar.
type SummaryTotals struct {
	TotalHaftalik   recon.Kurus
	TotalKrediKarti recon.Kurus
	GrandTotal      recon.Kurus
	VehicleCount    int
}

// WeeklySummary dönem hakediş kayıtlarını araç tablosuyla birleştirir.
// Hat tutarları o hatta kayıtlı araçlar arasında eşit bölünür (kuruş
// cinsinden tam bölme, kalan ilk araçlara birer kuruş dağıtılır); araç
// tutarları araç numarasıyla doğrudan eşleşir. Hattı araçsız kalan tutarlar
// özete giremez, katkısı düşer.
func WeeklySummary(records []models.Hakedis, vehicles []models.Vehicle) ([]VehicleSummary, SummaryTotals, error) {
	byNumber := make(map[string]*VehicleSummary, len(vehicles))
	byRoute := make(map[string][]*VehicleSummary)

	ordered := make([]*VehicleSummary, 0, len(vehicles))
	for _, v := range vehicles {
		vs := &VehicleSummary{
			VehicleNumber: v.VehicleNumber,
			PlateNumber:   v.PlateNumber,
			RouteName:     v.RouteName,
			IBAN:          v.IBAN,
			TaxID:         v.TaxID,
		}
		byNumber[fmt.Sprint(v.VehicleNumber)] = vs
		byRoute[v.RouteName] = append(byRoute[v.RouteName], vs)
		ordered = append(ordered, vs)
	}

	for _, rec := range records {
		amounts, err := decodeAmounts(rec)
		if err != nil {
			return nil, SummaryTotals{}, fmt.Errorf("hakediş %d çözümlenemedi: %w", rec.ID, err)
		}

		for route, amount := range amounts.Routes {
			group := byRoute[route]
			if len(group) == 0 {
				continue
			}
			share := amount / recon.Kurus(len(group))
			remainder := amount % recon.Kurus(len(group))
			for i, vs := range group {
				part := share
				if recon.Kurus(i) < remainder {
					part++
				}
				addShare(vs, rec.Type, part, 0)
			}
		}

		for number, amount := range amounts.Vehicles {
			vs, ok := byNumber[number]
			if !ok {
				continue
			}
			addShare(vs, rec.Type, 0, amount)
		}
	}

	var totals SummaryTotals
	summaries := make([]VehicleSummary, 0, len(ordered))
	for _, vs := range ordered {
		vs.GrandTotal = vs.Haftalik.total() + vs.KrediKarti.total()
		if vs.GrandTotal == 0 {
			continue
		}
		totals.TotalHaftalik += vs.Haftalik.total()
		totals.TotalKrediKarti += vs.KrediKarti.total()
		summaries = append(summaries, *vs)
	}
	totals.GrandTotal = totals.TotalHaftalik + totals.TotalKrediKarti
	totals.VehicleCount = len(summaries)

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].VehicleNumber < summaries[j].VehicleNumber
	})
	return summaries, totals, nil
}

func addShare(vs *VehicleSummary, t models.HakedisType, route, vehicle recon.Kurus) {
	switch t {
	case models.HakedisHaftalik:
		vs.Haftalik.RouteAmount += route
		vs.Haftalik.VehicleAmount += vehicle
	case models.HakedisKrediKarti:
		vs.KrediKarti.RouteAmount += route
		vs.KrediKarti.VehicleAmount += vehicle
	}
}
