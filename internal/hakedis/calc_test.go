package hakedis

import (
	"testing"
	"time"

	"gise-backend/internal/models"
	"gise-backend/internal/recon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountsTotal(t *testing.T) {
	a := Amounts{
		Routes:   map[string]recon.Kurus{"Merkez-1": 100000, "Merkez-2": 50000},
		Vehicles: map[string]recon.Kurus{"34": 25000},
	}
	assert.Equal(t, recon.Kurus(175000), a.Total())
}

func TestAmountsValidate(t *testing.T) {
	assert.NoError(t, Amounts{Routes: map[string]recon.Kurus{"A": 0}}.Validate())
	assert.Error(t, Amounts{Routes: map[string]recon.Kurus{"A": -1}}.Validate())
	assert.Error(t, Amounts{Routes: map[string]recon.Kurus{"": 100}}.Validate())
	assert.Error(t, Amounts{Vehicles: map[string]recon.Kurus{"34": -5}}.Validate())
}

func hakedisRecord(t models.HakedisType, routes, vehicles string) models.Hakedis {
	return models.Hakedis{
		ID:       1,
		Date:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Type:     t,
		Routes:   routes,
		Vehicles: vehicles,
	}
}

func TestWeeklySummaryRouteSplit(t *testing.T) {
	// Merkez hattında iki araç: 1000 TL hat tutarı eşit bölünür
	vehicles := []models.Vehicle{
		{VehicleNumber: 10, PlateNumber: "34 ABC 10", RouteName: "Merkez"},
		{VehicleNumber: 11, PlateNumber: "34 ABC 11", RouteName: "Merkez"},
	}
	records := []models.Hakedis{
		hakedisRecord(models.HakedisHaftalik, `{"Merkez":100000}`, ""),
	}

	summaries, totals, err := WeeklySummary(records, vehicles)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, recon.Kurus(50000), summaries[0].Haftalik.RouteAmount)
	assert.Equal(t, recon.Kurus(50000), summaries[1].Haftalik.RouteAmount)
	assert.Equal(t, recon.Kurus(100000), totals.TotalHaftalik)
	assert.Equal(t, recon.Kurus(100000), totals.GrandTotal)
	assert.Equal(t, 2, totals.VehicleCount)
}

func TestWeeklySummaryRouteSplitRemainder(t *testing.T) {
	// 100.01 TL üç araca bölünür; kuruş kalanı ilk araçlara dağıtılır,
	// toplam kayıpsız korunur
	vehicles := []models.Vehicle{
		{VehicleNumber: 1, RouteName: "Sahil"},
		{VehicleNumber: 2, RouteName: "Sahil"},
		{VehicleNumber: 3, RouteName: "Sahil"},
	}
	records := []models.Hakedis{
		hakedisRecord(models.HakedisHaftalik, `{"Sahil":10001}`, ""),
	}

	summaries, totals, err := WeeklySummary(records, vehicles)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	var sum recon.Kurus
	for _, s := range summaries {
		sum += s.Haftalik.RouteAmount
	}
	assert.Equal(t, recon.Kurus(10001), sum)
	assert.Equal(t, recon.Kurus(10001), totals.GrandTotal)
	assert.Equal(t, recon.Kurus(3334), summaries[0].Haftalik.RouteAmount)
}

func TestWeeklySummaryVehicleAmounts(t *testing.T) {
	vehicles := []models.Vehicle{
		{VehicleNumber: 34, PlateNumber: "34 XYZ 34", RouteName: "Merkez", IBAN: "TR00", TaxID: "123"},
		{VehicleNumber: 35, RouteName: "Sahil"},
	}
	records := []models.Hakedis{
		hakedisRecord(models.HakedisKrediKarti, `{"Merkez":20000}`, `{"34":5000}`),
	}

	summaries, totals, err := WeeklySummary(records, vehicles)
	require.NoError(t, err)
	// 35 numaralı araca pay düşmez, özete girmez
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 34, s.VehicleNumber)
	assert.Equal(t, "34 XYZ 34", s.PlateNumber)
	assert.Equal(t, "TR00", s.IBAN)
	assert.Equal(t, recon.Kurus(20000), s.KrediKarti.RouteAmount)
	assert.Equal(t, recon.Kurus(5000), s.KrediKarti.VehicleAmount)
	assert.Equal(t, recon.Kurus(25000), s.GrandTotal)
	assert.Equal(t, recon.Kurus(0), totals.TotalHaftalik)
	assert.Equal(t, recon.Kurus(25000), totals.TotalKrediKarti)
	assert.Equal(t, 1, totals.VehicleCount)
}

func TestWeeklySummaryMixedTypes(t *testing.T) {
	vehicles := []models.Vehicle{{VehicleNumber: 7, RouteName: "Merkez"}}
	records := []models.Hakedis{
		hakedisRecord(models.HakedisHaftalik, `{"Merkez":30000}`, ""),
		hakedisRecord(models.HakedisKrediKarti, `{"Merkez":12000}`, `{"7":800}`),
	}

	summaries, totals, err := WeeklySummary(records, vehicles)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, recon.Kurus(30000), s.Haftalik.RouteAmount)
	assert.Equal(t, recon.Kurus(12000), s.KrediKarti.RouteAmount)
	assert.Equal(t, recon.Kurus(800), s.KrediKarti.VehicleAmount)
	assert.Equal(t, recon.Kurus(42800), s.GrandTotal)
	assert.Equal(t, recon.Kurus(42800), totals.GrandTotal)
}

func TestWeeklySummaryUnknownRouteIgnored(t *testing.T) {
	vehicles := []models.Vehicle{{VehicleNumber: 1, RouteName: "Merkez"}}
	records := []models.Hakedis{
		hakedisRecord(models.HakedisHaftalik, `{"Bilinmeyen":99999}`, ""),
	}

	summaries, totals, err := WeeklySummary(records, vehicles)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Equal(t, recon.Kurus(0), totals.GrandTotal)
}

func TestWeeklySummaryMalformedRecord(t *testing.T) {
	vehicles := []models.Vehicle{{VehicleNumber: 1, RouteName: "Merkez"}}
	records := []models.Hakedis{
		hakedisRecord(models.HakedisHaftalik, `bozuk`, ""),
	}

	_, _, err := WeeklySummary(records, vehicles)
	assert.Error(t, err)
}
