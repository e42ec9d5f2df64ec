package recon_test

import (
	"testing"

	"gise-backend/internal/recon"

	"github.com/stretchr/testify/assert"
)

func TestBanknoteCountTotal(t *testing.T) {
	tests := []struct {
		name   string
		counts recon.BanknoteCount
		want   recon.Kurus
	}{
		{
			name:   "empty count is zero",
			counts: recon.BanknoteCount{},
			want:   0,
		},
		{
			name:   "weighted sum over all denominations",
			counts: recon.BanknoteCount{B100: 2, B50: 1, C1: 3},
			want:   25300, // 2×100 + 1×50 + 3×1 = 253.00 TL
		},
		{
			name:   "half lira coins",
			counts: recon.BanknoteCount{C050: 3},
			want:   150, // 1.50 TL
		},
		{
			name:   "full drawer",
			counts: recon.BanknoteCount{B200: 1, B100: 1, B50: 1, B20: 1, B10: 1, B5: 1, C1: 1, C050: 1},
			want:   38650, // 386.50 TL
		},
		{
			name:   "negative counts are clamped to zero",
			counts: recon.BanknoteCount{B200: -5, B10: 2},
			want:   2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.Total())
		})
	}
}

func TestBanknoteCountLinesOrder(t *testing.T) {
	lines := recon.BanknoteCount{B200: 1, C050: 4}.Lines()

	assert.Len(t, lines, 8)
	assert.Equal(t, "200 TL", lines[0].Label)
	assert.Equal(t, recon.Kurus(20000), lines[0].Value)
	assert.Equal(t, "50 Kuruş", lines[7].Label)
	assert.Equal(t, 4, lines[7].Count)

	// sıralama büyükten küçüğe
	for i := 1; i < len(lines); i++ {
		assert.Less(t, lines[i].Value, lines[i-1].Value)
	}
}

func TestKurusConversions(t *testing.T) {
	assert.Equal(t, recon.Kurus(5000), recon.FromLira(50))
	assert.Equal(t, recon.Kurus(4950), recon.FromLira(49.50))
	assert.Equal(t, recon.Kurus(1), recon.FromLira(0.01))
	assert.Equal(t, recon.Kurus(-250), recon.FromLira(-2.5))
	assert.Equal(t, 49.50, recon.Kurus(4950).Lira())
	assert.Equal(t, "49.50", recon.Kurus(4950).String())
	assert.Equal(t, "-2.05", recon.Kurus(-205).String())
}
