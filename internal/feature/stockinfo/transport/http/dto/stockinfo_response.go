// Package dto defines data transfer objects for the stockinfo HTTP API.
package dto

import "stock_market/internal/feature/stockinfo/domain/entity"

// ErrorResponse is returned with 502 when the remote source failed.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IntradayPointResponse represents one intraday close.
// Close is a decimal string so no precision is lost.
type IntradayPointResponse struct {
	Timestamp string `json:"timestamp"`
	Close     string `json:"close"`
}

// CompanyProfileResponse represents a company profile.
type CompanyProfileResponse struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Industry    string `json:"industry"`
}

// CompanyInfoResponse is the aggregate of one symbol's profile and intraday series.
type CompanyInfoResponse struct {
	Company  *CompanyProfileResponse `json:"company"`
	Intraday []IntradayPointResponse `json:"intraday"`
	Error    string                  `json:"error,omitempty"`
}

// ToIntradayResponse converts points to response items. Never returns nil.
func ToIntradayResponse(points []entity.IntradayPoint) []IntradayPointResponse {
	out := make([]IntradayPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, IntradayPointResponse{Timestamp: p.Timestamp, Close: p.Close.String()})
	}
	return out
}

// ToCompanyProfileResponse converts a profile.
func ToCompanyProfileResponse(p entity.CompanyProfile) CompanyProfileResponse {
	return CompanyProfileResponse{
		Symbol:      p.Symbol,
		Description: p.Description,
		Name:        p.Name,
		Country:     p.Country,
		Industry:    p.Industry,
	}
}

// ToCompanyInfoResponse converts the aggregate; a missing company stays null.
func ToCompanyInfoResponse(info entity.CompanyInfo) CompanyInfoResponse {
	res := CompanyInfoResponse{
		Intraday: ToIntradayResponse(info.Intraday),
		Error:    info.Error,
	}
	if info.Company != nil {
		c := ToCompanyProfileResponse(*info.Company)
		res.Company = &c
	}
	return res
}
