package models

// DocumentCounter tracks the last allocated document number per market type.
// The read-increment-write sequence must run under a row lock.
type DocumentCounter struct {
	MarketType string
	Counter    int64
}
