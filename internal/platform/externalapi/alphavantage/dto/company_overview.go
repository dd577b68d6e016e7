// Package dto defines data transfer objects for the Alpha Vantage API responses.
package dto

// CompanyOverviewResponse represents the JSON response of the OVERVIEW function.
// Every field is optional; Alpha Vantage omits keys it has no data for.
type CompanyOverviewResponse struct {
	Symbol      *string `json:"Symbol"`
	Description *string `json:"Description"`
	Name        *string `json:"Name"`
	Country     *string `json:"Country"`
	Industry    *string `json:"Industry"`
}

// APIMessage captures the error/throttle payloads Alpha Vantage returns with HTTP 200.
type APIMessage struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// Text returns the first non-empty message, or "" when the payload carries none.
func (m APIMessage) Text() string {
	switch {
	case m.ErrorMessage != "":
		return m.ErrorMessage
	case m.Note != "":
		return m.Note
	default:
		return m.Information
	}
}
