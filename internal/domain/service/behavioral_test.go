package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jayanth2212/AgriSure/internal/domain/model"
	"github.com/jayanth2212/AgriSure/internal/domain/valueobject"
)

func TestBehavioral_Rules(t *testing.T) {
	pest, drought, flood := valueobject.DamagePest, valueobject.DamageDrought, valueobject.DamageFlood
	none := valueobject.DamageType{}

	tests := []struct {
		name    string
		history []model.HistoricalRecord
		want    string
	}{
		{name: "no history", history: nil, want: "0"},
		{name: "clean history", history: cleanHistory(), want: "0"},
		{
			// 3 of 4 claimed is 0.75
			name: "high claim ratio",
			history: []model.HistoricalRecord{
				record(400, true, pest, 100, 1000),
				record(800, true, drought, 100, 1000),
				record(1200, true, flood, 100, 1000),
				record(1600, false, none, 0, 1000),
			},
			want: "0.5",
		},
		{
			name: "claim ratio of exactly 0.7 does not fire",
			history: []model.HistoricalRecord{
				record(100, true, pest, 1, 10), record(200, true, drought, 1, 10), record(300, true, flood, 1, 10),
				record(400, true, pest, 1, 10), record(500, true, drought, 1, 10), record(600, true, flood, 1, 10),
				record(700, true, pest, 1, 10), record(800, false, none, 0, 10), record(900, false, none, 0, 10),
				record(1000, false, none, 0, 10),
			},
			want: "0",
		},
		{
			// Same cause three times but only 3 of 6 seasons claimed.
			name: "always the same cause",
			history: []model.HistoricalRecord{
				record(400, true, drought, 100, 1000),
				record(800, true, drought, 100, 1000),
				record(1200, true, drought, 100, 1000),
				record(1600, false, none, 0, 1000),
				record(2000, false, none, 0, 1000),
				record(2400, false, none, 0, 1000),
			},
			want: "0.3",
		},
		{
			name: "two claims of the same cause are not a pattern",
			history: []model.HistoricalRecord{
				record(400, true, drought, 100, 1000),
				record(800, true, drought, 100, 1000),
				record(1200, false, none, 0, 1000),
			},
			want: "0",
		},
		{
			// 2 of 3 claimed records exceed 80% of the policy.
			name: "large claims",
			history: []model.HistoricalRecord{
				record(400, true, pest, 900, 1000),
				record(800, true, drought, 850, 1000),
				record(1200, true, flood, 100, 1000),
				record(1600, false, none, 0, 1000),
				record(2000, false, none, 0, 1000),
			},
			want: "0.4",
		},
		{
			name: "unknown policy amount is never a large claim",
			history: []model.HistoricalRecord{
				record(400, true, pest, 900, 0),
				record(800, true, drought, 850, 0),
				record(1200, false, none, 0, 1000),
			},
			want: "0",
		},
		{
			// Only the two sized claims are judged and one of them is large.
			name: "unknown policy amounts drop out of the large-claim count",
			history: []model.HistoricalRecord{
				record(400, true, pest, 900, 1000),
				record(800, true, drought, 100, 1000),
				record(1200, true, flood, 5000, 0),
				record(1600, false, none, 0, 1000),
				record(2000, false, none, 0, 1000),
			},
			want: "0",
		},
		{
			name: "half large claims is not more than half",
			history: []model.HistoricalRecord{
				record(400, true, pest, 900, 1000),
				record(800, true, drought, 100, 1000),
				record(1200, false, none, 0, 1000),
			},
			want: "0",
		},
		{
			name: "amount of exactly 80 percent is not large",
			history: []model.HistoricalRecord{
				record(400, true, pest, 800, 1000),
				record(800, false, none, 0, 1000),
			},
			want: "0",
		},
		{
			name: "every rule clamps to one",
			history: []model.HistoricalRecord{
				record(400, true, pest, 950, 1000),
				record(800, true, pest, 950, 1000),
				record(1200, true, pest, 950, 1000),
			},
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := cleanEnv().assess(t, farmer(), cleanClaim(), tt.history)
			assert.Equal(t, tt.want, a.SubScores().Behavioral.String())
		})
	}
}

func TestBehavioral_TrustScoreIgnored(t *testing.T) {
	history := []model.HistoricalRecord{
		record(400, true, valueobject.DamagePest, 950, 1000),
		record(800, true, valueobject.DamagePest, 950, 1000),
	}
	low := model.FarmerProfile{FarmerID: "f", TrustScore: 0}
	high := model.FarmerProfile{FarmerID: "f", TrustScore: 1000}

	a1 := cleanEnv().assess(t, low, cleanClaim(), history)
	a2 := cleanEnv().assess(t, high, cleanClaim(), history)
	assert.True(t, a1.SubScores().Behavioral.Equal(a2.SubScores().Behavioral))
}
