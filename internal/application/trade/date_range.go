package trade

import (
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Date range names accepted by the order list and stats
const (
	RangeAll    = "all"
	RangeToday  = "today"
	RangeWeek   = "week"
	RangeMonth  = "month"
	RangeCustom = "custom"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateRange is returned for an unknown range or a malformed date
var ErrInvalidDateRange = shared.NewDomainError("INVALID_DATE_RANGE", "Invalid date range")

// Resolve turns the filter into [from, to) bounds in loc. Weeks start on
// Monday. A custom range includes the whole To day. Nil bounds are open.
func (f DateRangeFilter) Resolve(now time.Time, loc *time.Location) (from, to *time.Time, err error) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch f.Range {
	case "", RangeAll:
		return nil, nil, nil
	case RangeToday:
		end := today.AddDate(0, 0, 1)
		return &today, &end, nil
	case RangeWeek:
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return &start, nil, nil
	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return &start, nil, nil
	case RangeCustom:
		if f.From != "" {
			start, err := time.ParseInLocation(dateLayout, f.From, loc)
			if err != nil {
				return nil, nil, ErrInvalidDateRange
			}
			from = &start
		}
		if f.To != "" {
			day, err := time.ParseInLocation(dateLayout, f.To, loc)
			if err != nil {
				return nil, nil, ErrInvalidDateRange
			}
			end := day.AddDate(0, 0, 1)
			to = &end
		}
		if from != nil && to != nil && !from.Before(*to) {
			return nil, nil, ErrInvalidDateRange
		}
		return from, to, nil
	default:
		return nil, nil, ErrInvalidDateRange
	}
}
