package dashboard

import (
	"fmt"
	"sort"
	"time"

	"gise-backend/internal/database"
	"gise-backend/internal/recon"

	"github.com/gofiber/fiber/v2"
)

type SalesChartPoint struct {
	Label      string  `json:"label"` // tarih / hafta başlangıcı / ay başlangıcı
	Desk       float64 `json:"desk"`
	BayiDolum  float64 `json:"bayiDolum"`
	TotalSales float64 `json:"totalSales"`
	Difference float64 `json:"difference"`
}

type SalesChartGrandTotals struct {
	Desk       float64 `json:"desk"`
	BayiDolum  float64 `json:"bayiDolum"`
	TotalSales float64 `json:"totalSales"`
	Difference float64 `json:"difference"`
}

type SalesChartResponse struct {
	Period      string                `json:"period"` // daily | weekly | monthly
	From        string                `json:"from"`
	To          string                `json:"to"`
	Points      []SalesChartPoint     `json:"points"`
	GrandTotals SalesChartGrandTotals `json:"grandTotals"`
}

// GET /api/dashboard/sales-chart?period=daily&count=7
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
			}
		}

		now := time.Now()
		loc := now.Location()
		// bugünün 00:00'ı
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			start = end.AddDate(0, 0, -7*(count-1))
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
			end = start.AddDate(0, count, 0).AddDate(0, 0, -1)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		type row struct {
			Bucket     time.Time `gorm:"column:bucket"`
			RecordType string    `gorm:"column:record_type"`
			Sales      int64     `gorm:"column:sales"`
			Diff       int64     `gorm:"column:diff"`
		}
		var rows []row

		var trunc string
		switch period {
		case "weekly":
			trunc = "date_trunc('week', date)::date"
		case "monthly":
			trunc = "date_trunc('month', date)::date"
		default:
			trunc = "date::date"
		}

		sql := fmt.Sprintf(`
			SELECT %s AS bucket,
				   record_type,
				   SUM(total_sales) AS sales,
				   SUM(difference) AS diff
			FROM submissions
			WHERE date >= ? AND date <= ?
			GROUP BY bucket, record_type
			ORDER BY bucket ASC;
		`, trunc)

		if err := database.DB.Raw(sql, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		type bucketAgg struct {
			Bucket    time.Time
			Desk      recon.Kurus
			BayiDolum recon.Kurus
			Diff      recon.Kurus
		}

		buckets := make(map[time.Time]*bucketAgg)
		for _, r := range rows {
			agg, ok := buckets[r.Bucket]
			if !ok {
				agg = &bucketAgg{Bucket: r.Bucket}
				buckets[r.Bucket] = agg
			}

			switch r.RecordType {
			case string(recon.RecordTypeDesk):
				agg.Desk += recon.Kurus(r.Sales)
			case string(recon.RecordTypeBayi):
				agg.BayiDolum += recon.Kurus(r.Sales)
			}
			agg.Diff += recon.Kurus(r.Diff)
		}

		ordered := make([]bucketAgg, 0, len(buckets))
		for _, v := range buckets {
			ordered = append(ordered, *v)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Bucket.Before(ordered[j].Bucket)
		})

		points := make([]SalesChartPoint, 0, len(ordered))
		var grandDesk, grandBayi, grandDiff recon.Kurus

		for _, b := range ordered {
			total := b.Desk + b.BayiDolum
			points = append(points, SalesChartPoint{
				Label:      b.Bucket.Format("2006-01-02"),
				Desk:       b.Desk.Lira(),
				BayiDolum:  b.BayiDolum.Lira(),
				TotalSales: total.Lira(),
				Difference: b.Diff.Lira(),
			})

			grandDesk += b.Desk
			grandBayi += b.BayiDolum
			grandDiff += b.Diff
		}

		resp := SalesChartResponse{
			Period: period,
			From:   start.Format("2006-01-02"),
			To:     end.Format("2006-01-02"),
			Points: points,
			GrandTotals: SalesChartGrandTotals{
				Desk:       grandDesk.Lira(),
				BayiDolum:  grandBayi.Lira(),
				TotalSales: (grandDesk + grandBayi).Lira(),
				Difference: grandDiff.Lira(),
			},
		}

		return c.JSON(resp)
	}
}
