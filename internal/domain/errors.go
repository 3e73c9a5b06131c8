package domain

import "errors"

var (
	// ErrFundNotFound is returned when a lookup by fund id has no match.
	ErrFundNotFound = errors.New("fund not found")
	// ErrInvalidTopN is returned when a caller asks for a negative number of funds.
	ErrInvalidTopN = errors.New("top_n must not be negative")
	// ErrDatasetUnavailable is returned when the fund dataset source cannot be read.
	ErrDatasetUnavailable = errors.New("fund dataset unavailable")
	// ErrEmptyDataset is returned when a dataset source holds no funds.
	ErrEmptyDataset = errors.New("fund dataset is empty")
	// ErrNoStructuredBlock is returned when generated text holds no JSON object.
	ErrNoStructuredBlock = errors.New("no structured block found in text")
)
