package grouporder

import (
	"fmt"
	"time"

	"github.com/mandikart/mandikart/internal/entity"
)

// TimeLeft is the display-oriented breakdown of time until a deadline.
// Resolution coarsens with distance: days+hours beyond a day, hours+minutes
// beyond an hour, minutes below that.
type TimeLeft struct {
	Expired bool
	Days    int
	Hours   int
	Minutes int
}

// TimeRemaining computes the time left until deadline as seen at now. A
// deadline that has been reached is expired; there is no grace period.
func TimeRemaining(deadline, now time.Time) TimeLeft {
	if !now.Before(deadline) {
		return TimeLeft{Expired: true}
	}
	left := deadline.Sub(now)
	switch {
	case left >= 24*time.Hour:
		days := int(left / (24 * time.Hour))
		hours := int((left % (24 * time.Hour)) / time.Hour)
		return TimeLeft{Days: days, Hours: hours}
	case left >= time.Hour:
		hours := int(left / time.Hour)
		minutes := int((left % time.Hour) / time.Minute)
		return TimeLeft{Hours: hours, Minutes: minutes}
	default:
		return TimeLeft{Minutes: int(left / time.Minute)}
	}
}

// String renders the breakdown the way campaign cards display it.
func (t TimeLeft) String() string {
	switch {
	case t.Expired:
		return "expired"
	case t.Days > 0:
		return fmt.Sprintf("%dd %dh", t.Days, t.Hours)
	case t.Hours > 0:
		return fmt.Sprintf("%dh %dm", t.Hours, t.Minutes)
	default:
		return fmt.Sprintf("%dm", t.Minutes)
	}
}

// ProgressPercent reports how close a campaign is to its vendor threshold,
// capped at 100.
func ProgressPercent(memberCount, minVendors int) int {
	if minVendors <= 0 {
		return 100
	}
	pct := memberCount * 100 / minVendors
	if pct > 100 {
		pct = 100
	}
	return pct
}

// TotalQuantity sums the quantities requested across all memberships.
func TotalQuantity(memberships []entity.Membership) int {
	total := 0
	for _, m := range memberships {
		total += m.Quantity
	}
	return total
}

// IsMember reports whether the user is enrolled in the group order.
func IsMember(g *entity.GroupOrder, userID string) bool {
	if g == nil {
		return false
	}
	for _, m := range g.Memberships {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
