// Package api defines the JSON wire models. All monetary amounts, rates
// and percentages are serialized as decimal strings, never as JSON
// numbers; dates are YYYY-MM-DD strings and timestamps RFC 3339.
package api

import "time"

type Tenant struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
