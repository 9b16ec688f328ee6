package common_utils

import "time"

func StrPTR(src string) *string {
	ret := new(string)
	*ret = src
	return ret
}

// "2026-01-06T00:00:00Z"
func StringToDate(dateString string) (*time.Time, error) {
	parsedTime, err := time.Parse(time.RFC3339, dateString)
	if err != nil {
		return nil, err
	}

	return &parsedTime, nil
}

// DateToString is the inverse of StringToDate, always in UTC.
func DateToString(date time.Time) string {
	return date.UTC().Format(time.RFC3339)
}
