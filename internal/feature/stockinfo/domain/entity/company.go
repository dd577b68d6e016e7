package entity

// CompanyProfile describes a company. Absent source fields are "".
type CompanyProfile struct {
	Symbol      string
	Description string
	Name        string
	Country     string
	Industry    string
}

// RawCompanyProfile is the remote payload before defaulting; nil means the
// source omitted the field.
type RawCompanyProfile struct {
	Symbol      *string
	Description *string
	Name        *string
	Country     *string
	Industry    *string
}

// CompanyInfo aggregates everything shown for one symbol.
// Error holds the first failure message; the other fields hold whatever succeeded.
type CompanyInfo struct {
	Company  *CompanyProfile
	Intraday []IntradayPoint
	Error    string
}
