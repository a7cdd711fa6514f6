package ranking

import "testing"

func TestComputeNoHistoryBaseline(t *testing.T) {
	score, label := Compute(History{})
	if score != 50 {
		t.Fatalf("expected baseline score 50, got %d", score)
	}
	if label != "Average" {
		t.Fatalf("expected baseline label Average, got %q", label)
	}
}

// A score of 50 earned from real history reads "Reliable"; the same
// score handed to an unproven worker reads "Average". The two must
// never collapse into one label.
func TestBaselineLabelDiffersFromEarnedFifty(t *testing.T) {
	_, baseline := Compute(History{})
	if baseline != "Average" {
		t.Fatalf("zero-deal label = %q, want Average", baseline)
	}

	// 30 (completion) + 20 (attendance) = exactly 50, earned.
	earned := History{
		TotalDeals:          1,
		CompletedDeals:      1,
		DistinctContractors: 1,
		ApprovedAttendance:  1,
	}
	score, label := Compute(earned)
	if score != 50 {
		t.Fatalf("earned score = %d, want 50", score)
	}
	if label != "Reliable" {
		t.Errorf("earned 50 labeled %q, want Reliable", label)
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		history   History
		wantScore int
		wantLabel string
	}{
		{
			name: "established worker",
			history: History{
				TotalDeals:          10,
				CompletedDeals:      8,
				RejectedDeals:       2,
				DistinctContractors: 7,
				RecentDeals:         3,
				ApprovedAttendance:  9,
				AverageRating:       4.2,
			},
			// 24 + 20 + 16.8 + 4.5 + 15 - 10 = 70.3
			wantScore: 70,
			wantLabel: "Trusted",
		},
		{
			name: "perfect record",
			history: History{
				TotalDeals:          20,
				CompletedDeals:      20,
				DistinctContractors: 5,
				RecentDeals:         4,
				ApprovedAttendance:  20,
				AverageRating:       5,
			},
			// 30 + 20 + 20 + 11.25 + 15 = 96.25
			wantScore: 96,
			wantLabel: "Top",
		},
		{
			name: "rejections clamp to zero",
			history: History{
				TotalDeals:    12,
				RejectedDeals: 12,
			},
			wantScore: 0,
			wantLabel: "Risky",
		},
		{
			name: "single completed deal",
			history: History{
				TotalDeals:          1,
				CompletedDeals:      1,
				DistinctContractors: 1,
				RecentDeals:         1,
				ApprovedAttendance:  1,
				AverageRating:       5,
			},
			// 30 + 20 + 20 + 0 + 10 = 80
			wantScore: 80,
			wantLabel: "Trusted",
		},
		{
			name: "activity bonus capped at 15",
			history: History{
				TotalDeals:          6,
				CompletedDeals:      6,
				DistinctContractors: 6,
				RecentDeals:         6,
				ApprovedAttendance:  6,
				AverageRating:       0,
			},
			// 30 + 20 + 0 + 0 + min(60, 15) = 65
			wantScore: 65,
			wantLabel: "Reliable",
		},
		{
			name: "attendance ratio capped at 100",
			history: History{
				TotalDeals:          2,
				CompletedDeals:      1,
				DistinctContractors: 1,
				ApprovedAttendance:  40,
			},
			// 15 + 20 + 0 + 7.5 + 0 = 42.5
			wantScore: 43,
			wantLabel: "Average",
		},
		{
			name: "applications without outcomes",
			history: History{
				TotalDeals:          4,
				DistinctContractors: 4,
			},
			wantScore: 0,
			wantLabel: "Risky",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, label := Compute(tt.history)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

func TestLabelBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Top"},
		{85, "Top"},
		{84, "Trusted"},
		{70, "Trusted"},
		{69, "Reliable"},
		{50, "Reliable"},
		{49, "Average"},
		{30, "Average"},
		{29, "Risky"},
		{0, "Risky"},
	}

	for _, tt := range tests {
		if got := labelFor(tt.score); got != tt.want {
			t.Errorf("labelFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
