package usecase

import "stock_market/internal/feature/stockinfo/domain/entity"

// toCompanyProfile applies the empty-string default to every absent field.
func toCompanyProfile(raw *entity.RawCompanyProfile) entity.CompanyProfile {
	if raw == nil {
		return entity.CompanyProfile{}
	}
	return entity.CompanyProfile{
		Symbol:      orEmpty(raw.Symbol),
		Description: orEmpty(raw.Description),
		Name:        orEmpty(raw.Name),
		Country:     orEmpty(raw.Country),
		Industry:    orEmpty(raw.Industry),
	}
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
