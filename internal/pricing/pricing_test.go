package pricing

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		booking Booking
		want    Quote
		wantErr error
	}{
		{
			name: "variable model peak evening booking",
			cfg: Config{
				Model:       ModelVariable,
				PeakHourFee: 150,
				GuestFee:    70,
				PeakHours:   []int{18, 19, 20, 21},
			},
			booking: Booking{StartSlot: 18, EndSlot: 20, MemberCount: 2, GuestCount: 1},
			want:    Quote{TotalBaseFee: 300, TotalGuestFee: 140, MemberShare: 150},
		},
		{
			name: "variable model mixes peak and off-peak hours",
			cfg: Config{
				Model:          ModelVariable,
				PeakHourFee:    150,
				OffPeakHourFee: 100,
				GuestFee:       70,
				PeakHours:      []int{18, 19, 20, 21},
			},
			booking: Booking{StartSlot: 17, EndSlot: 19, MemberCount: 2, GuestCount: 0},
			// 17:00 off-peak (100) + 18:00 peak (150)
			want: Quote{TotalBaseFee: 250, TotalGuestFee: 0, MemberShare: 125},
		},
		{
			name: "variable model charges guest fee per hour",
			cfg: Config{
				Model:          ModelVariable,
				OffPeakHourFee: 80,
				GuestFee:       50,
			},
			booking: Booking{StartSlot: 8, EndSlot: 11, MemberCount: 3, GuestCount: 2},
			want:    Quote{TotalBaseFee: 240, TotalGuestFee: 300, MemberShare: 80},
		},
		{
			name: "fixed hourly share times member count equals base fee",
			cfg: Config{
				Model:          ModelFixedHourly,
				FixedHourlyFee: 200,
				GuestFee:       70,
			},
			booking: Booking{StartSlot: 9, EndSlot: 12, MemberCount: 4, GuestCount: 1},
			want:    Quote{TotalBaseFee: 600, TotalGuestFee: 210, MemberShare: 150},
		},
		{
			name: "fixed hourly uneven split rounds to cents",
			cfg: Config{
				Model:          ModelFixedHourly,
				FixedHourlyFee: 100,
			},
			booking: Booking{StartSlot: 10, EndSlot: 11, MemberCount: 3},
			want:    Quote{TotalBaseFee: 100, TotalGuestFee: 0, MemberShare: 33.33},
		},
		{
			name: "fixed daily charges each member the full daily fee",
			cfg: Config{
				Model:         ModelFixedDaily,
				FixedDailyFee: 500,
				GuestFee:      70,
			},
			booking: Booking{StartSlot: 6, EndSlot: 10, MemberCount: 3, GuestCount: 2},
			// Guest fee applies once per day, not per hour.
			want: Quote{TotalBaseFee: 1500, TotalGuestFee: 140, MemberShare: 500},
		},
		{
			name: "single member no guests gets the whole base fee",
			cfg: Config{
				Model:          ModelVariable,
				OffPeakHourFee: 120,
			},
			booking: Booking{StartSlot: 7, EndSlot: 9, MemberCount: 1},
			want:    Quote{TotalBaseFee: 240, TotalGuestFee: 0, MemberShare: 240},
		},
		{
			name:    "zero members is rejected",
			cfg:     Config{Model: ModelVariable, OffPeakHourFee: 100},
			booking: Booking{StartSlot: 9, EndSlot: 10, MemberCount: 0},
			wantErr: ErrNoMembers,
		},
		{
			name:    "end slot before start slot is rejected",
			cfg:     Config{Model: ModelFixedHourly, FixedHourlyFee: 100},
			booking: Booking{StartSlot: 12, EndSlot: 12, MemberCount: 2},
			wantErr: ErrInvalidTimeSpan,
		},
		{
			name:    "negative fee configuration is rejected",
			cfg:     Config{Model: ModelVariable, OffPeakHourFee: -10},
			booking: Booking{StartSlot: 9, EndSlot: 10, MemberCount: 2},
			wantErr: ErrNegativeFee,
		},
		{
			name:    "negative guest count is rejected",
			cfg:     Config{Model: ModelVariable, OffPeakHourFee: 100},
			booking: Booking{StartSlot: 9, EndSlot: 10, MemberCount: 2, GuestCount: -1},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.cfg, tt.booking)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Evaluate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if !almostEqual(got.TotalBaseFee, tt.want.TotalBaseFee) {
				t.Errorf("TotalBaseFee = %v, want %v", got.TotalBaseFee, tt.want.TotalBaseFee)
			}
			if !almostEqual(got.TotalGuestFee, tt.want.TotalGuestFee) {
				t.Errorf("TotalGuestFee = %v, want %v", got.TotalGuestFee, tt.want.TotalGuestFee)
			}
			if !almostEqual(got.MemberShare, tt.want.MemberShare) {
				t.Errorf("MemberShare = %v, want %v", got.MemberShare, tt.want.MemberShare)
			}
		})
	}
}

func TestEvaluateVariableSumsEveryHour(t *testing.T) {
	cfg := Config{
		Model:          ModelVariable,
		PeakHourFee:    150,
		OffPeakHourFee: 90,
		PeakHours:      []int{18, 19, 20, 21},
	}

	for start := 6; start < 22; start++ {
		for end := start + 1; end <= 22; end++ {
			got, err := Evaluate(cfg, Booking{StartSlot: start, EndSlot: end, MemberCount: 2})
			if err != nil {
				t.Fatalf("Evaluate(%d-%d): %v", start, end, err)
			}
			var want float64
			for h := start; h < end; h++ {
				if h >= 18 && h <= 21 {
					want += cfg.PeakHourFee
				} else {
					want += cfg.OffPeakHourFee
				}
			}
			if !almostEqual(got.TotalBaseFee, want) {
				t.Errorf("Evaluate(%d-%d) TotalBaseFee = %v, want %v", start, end, got.TotalBaseFee, want)
			}
		}
	}
}

func TestEvaluateFixedHourlyShareReconstructsBaseFee(t *testing.T) {
	cfg := Config{Model: ModelFixedHourly, FixedHourlyFee: 175}

	for members := 1; members <= 8; members++ {
		got, err := Evaluate(cfg, Booking{StartSlot: 10, EndSlot: 13, MemberCount: members})
		if err != nil {
			t.Fatalf("Evaluate with %d members: %v", members, err)
		}
		rebuilt := got.MemberShare * float64(members)
		if math.Abs(rebuilt-got.TotalBaseFee) > 0.01*float64(members) {
			t.Errorf("%d members: share*count = %v, base fee = %v", members, rebuilt, got.TotalBaseFee)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.0},
		{10.005, 10.01},
		{33.333333, 33.33},
		{66.666666, 66.67},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
