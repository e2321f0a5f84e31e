package utils

import "time"

const DateLayout = "2006-01-02"

// ParseDate valida uma data no formato YYYY-MM-DD. String vazia retorna nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// FormatDate formata a data no layout usado pelas tabelas diárias
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
