package catalog

import (
	"fmt"

	"cuecafe/pkg/model"
)

// BuildGrid lays out one-hour slots from openHour to closeHour and marks each
// unavailable iff its exact "start-end" key is occupied. Pure function of its
// inputs; slots come back in chronological order.
func BuildGrid(openHour, closeHour int, occupied map[string]struct{}) []model.Slot {
	slots := make([]model.Slot, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		start := fmt.Sprintf("%02d:00", hour)
		end := fmt.Sprintf("%02d:00", hour+1)
		key := start + "-" + end

		_, taken := occupied[key]
		slots = append(slots, model.Slot{
			StartTime: start,
			EndTime:   end,
			Available: !taken,
			TimeKey:   key,
		})
	}
	return slots
}

// OccupiedKeys collapses confirmed bookings into their slot keys.
func OccupiedKeys(bookings []model.Booking) map[string]struct{} {
	occupied := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		occupied[b.StartTime+"-"+b.EndTime] = struct{}{}
	}
	return occupied
}
