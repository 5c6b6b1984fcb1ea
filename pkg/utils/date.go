package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate converte uma data YYYY-MM-DD; string vazia é erro
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, fmt.Errorf("data vazia")
	}

	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
