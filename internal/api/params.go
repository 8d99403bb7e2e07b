package api

import (
	"net/url"
	"strconv"

	"merchdash/internal/models"
)

func dateParams(r models.DateRange) url.Values {
	q := url.Values{}
	if !r.Start.IsZero() {
		q.Set("startDate", r.StartDate())
	}
	if !r.End.IsZero() {
		q.Set("endDate", r.EndDate())
	}
	return q
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setIfPositive(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
