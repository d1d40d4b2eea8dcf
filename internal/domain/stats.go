package domain

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// CompanyStats is the dashboard rollup over one company's slots.
type CompanyStats struct {
	TotalVisits     int `json:"total_visits"`
	TotalRegistered int `json:"total_registered"`
	TotalCapacity   int `json:"total_capacity"`
	AverageFillRate int `json:"average_fill_rate"`
}

// PlatformStats is the admin overview across the whole platform.
type PlatformStats struct {
	TotalCompanies     int          `json:"total_companies"`
	TotalStudents      int          `json:"total_students"`
	TotalVisits        int          `json:"total_visits"`
	PendingValidations int          `json:"pending_validations"`
	TopCompanies       []TopCompany `json:"top_companies"`
	LastUpdated        time.Time    `json:"last_updated"`
}

// TopCompany is one row of the confirmed-visits ranking.
type TopCompany struct {
	Name     string `json:"name"`
	Visits   int    `json:"visits"`
	Students int    `json:"students"`
}

// SlotBookingStats breaks a slot's participant counts down by booking
// status. Feeds the DataGouv export columns.
type SlotBookingStats struct {
	TotalBookings         int `json:"total_bookings"`
	TotalParticipants     int `json:"total_participants"`
	ConfirmedParticipants int `json:"confirmed_participants"`
	PendingParticipants   int `json:"pending_participants"`
	CancelledParticipants int `json:"cancelled_participants"`
}

// FillRatePercent returns round(100 * registered / capacity), 0 for an
// empty capacity. Values above 100 are returned as-is: an over-capacity
// figure means the seat counter drifted and must stay visible rather than
// be silently corrected. Clamp only the visual bar via BarWidthPercent.
func FillRatePercent(registered, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return int(math.Round(float64(registered) * 100 / float64(capacity)))
}

// BarWidthPercent clamps a fill rate to [0,100] for rendering widths.
func BarWidthPercent(fillRate int) int {
	if fillRate < 0 {
		return 0
	}
	if fillRate > 100 {
		return 100
	}
	return fillRate
}

// AvailableFromBookings recomputes remaining seats from confirmed bookings,
// clamped so it is never reported negative. This is the audit path; the
// persisted counter on TimeSlot is the live value.
func AvailableFromBookings(capacity int, bookings []*Booking) int {
	registered := 0
	for _, booking := range bookings {
		if booking.ConsumesCapacity() {
			registered += booking.ParticipantContribution()
		}
	}

	available := capacity - registered
	if available < 0 {
		return 0
	}
	return available
}

// AggregateCompanyStats rolls slot counters up into company-wide figures.
func AggregateCompanyStats(slots []*TimeSlot) CompanyStats {
	stats := CompanyStats{
		TotalVisits: len(slots),
	}

	for _, slot := range slots {
		stats.TotalRegistered += slot.Registered()
		stats.TotalCapacity += slot.Capacity
	}

	stats.AverageFillRate = FillRatePercent(stats.TotalRegistered, stats.TotalCapacity)
	return stats
}

// TopCompanies ranks companies by confirmed booking count, descending,
// truncated to n. Ties keep first-seen order (stable sort over insertion
// order). Bookings whose slot or company is unknown are skipped.
func TopCompanies(
	bookings []*Booking,
	slots map[uuid.UUID]*TimeSlot,
	companies map[uuid.UUID]*Company,
	n int,
) []TopCompany {
	type entry struct {
		top   TopCompany
		order int
	}

	byCompany := make(map[uuid.UUID]*entry)
	ordered := make([]*entry, 0)

	for _, booking := range bookings {
		if booking.Status != BookingConfirmed {
			continue
		}
		slot, ok := slots[booking.TimeSlotID]
		if !ok {
			continue
		}
		company, ok := companies[slot.CompanyID]
		if !ok {
			continue
		}

		e, ok := byCompany[slot.CompanyID]
		if !ok {
			e = &entry{top: TopCompany{Name: company.Name}, order: len(ordered)}
			byCompany[slot.CompanyID] = e
			ordered = append(ordered, e)
		}

		e.top.Visits++
		e.top.Students += booking.ParticipantContribution()
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].top.Visits > ordered[j].top.Visits
	})

	if n >= 0 && len(ordered) > n {
		ordered = ordered[:n]
	}

	result := make([]TopCompany, len(ordered))
	for i, e := range ordered {
		result[i] = e.top
	}
	return result
}

// ComputeSlotBookingStats tallies one slot's bookings by status.
func ComputeSlotBookingStats(bookings []*Booking) SlotBookingStats {
	stats := SlotBookingStats{
		TotalBookings: len(bookings),
	}

	for _, booking := range bookings {
		participants := booking.ParticipantContribution()
		stats.TotalParticipants += participants

		switch booking.Status {
		case BookingConfirmed:
			stats.ConfirmedParticipants += participants
		case BookingPending:
			stats.PendingParticipants += participants
		case BookingCancelled:
			stats.CancelledParticipants += participants
		}
	}

	return stats
}
