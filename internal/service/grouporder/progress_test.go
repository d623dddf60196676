package grouporder

import (
	"testing"
	"time"

	"github.com/mandikart/mandikart/internal/entity"
)

func TestTimeRemaining(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		now      time.Time
		want     TimeLeft
		display  string
	}{
		{
			name:     "days and hours",
			deadline: base.Add(50 * time.Hour),
			now:      base,
			want:     TimeLeft{Days: 2, Hours: 2},
			display:  "2d 2h",
		},
		{
			name:     "hours and minutes",
			deadline: base.Add(3*time.Hour + 12*time.Minute),
			now:      base,
			want:     TimeLeft{Hours: 3, Minutes: 12},
			display:  "3h 12m",
		},
		{
			name:     "minutes only",
			deadline: base.Add(45 * time.Minute),
			now:      base,
			want:     TimeLeft{Minutes: 45},
			display:  "45m",
		},
		{
			name:     "under a minute still not expired",
			deadline: base.Add(30 * time.Second),
			now:      base,
			want:     TimeLeft{Minutes: 0},
			display:  "0m",
		},
		{
			name:     "exactly at deadline is expired",
			deadline: base,
			now:      base,
			want:     TimeLeft{Expired: true},
			display:  "expired",
		},
		{
			name:     "just past deadline is expired",
			deadline: base.Add(30 * time.Second),
			now:      base.Add(31 * time.Second),
			want:     TimeLeft{Expired: true},
			display:  "expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeRemaining(tt.deadline, tt.now)
			if got != tt.want {
				t.Errorf("TimeRemaining() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.display {
				t.Errorf("String() = %q, want %q", got.String(), tt.display)
			}
		})
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name        string
		memberCount int
		minVendors  int
		want        int
	}{
		{"empty", 0, 3, 0},
		{"partial", 2, 3, 66},
		{"exact threshold", 3, 3, 100},
		{"over threshold is capped", 9, 3, 100},
		{"degenerate min vendors", 1, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercent(tt.memberCount, tt.minVendors); got != tt.want {
				t.Errorf("ProgressPercent(%d, %d) = %d, want %d", tt.memberCount, tt.minVendors, got, tt.want)
			}
		})
	}
}

func TestTotalQuantity(t *testing.T) {
	ms := []entity.Membership{
		{UserID: "u1", Quantity: 1},
		{UserID: "u2", Quantity: 2},
		{UserID: "u3", Quantity: 2},
	}
	if got := TotalQuantity(ms); got != 5 {
		t.Errorf("TotalQuantity() = %d, want 5", got)
	}
	if got := TotalQuantity(nil); got != 0 {
		t.Errorf("TotalQuantity(nil) = %d, want 0", got)
	}
}

func TestIsMember(t *testing.T) {
	g := &entity.GroupOrder{
		Memberships: []entity.Membership{
			{UserID: "u1", Quantity: 1},
			{UserID: "u2", Quantity: 4},
		},
	}
	if !IsMember(g, "u2") {
		t.Error("expected u2 to be a member")
	}
	if IsMember(g, "u9") {
		t.Error("did not expect u9 to be a member")
	}
	if IsMember(nil, "u1") {
		t.Error("nil group order has no members")
	}
}
