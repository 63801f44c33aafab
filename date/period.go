package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a well known calendar period.
type Period int

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// ParsePeriod parses a period name such as "month" or "monthly".
func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Weekly:
		// ISO weeks start on Monday.
		offset := (int(d.Weekday()) + 6) % 7
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		return d
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	switch p {
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		return New(d.y, (d.m-1)/3*3+4, 0)
	case Yearly:
		return New(d.y, time.December, 31)
	default:
		return d
	}
}
