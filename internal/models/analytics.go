package models

import "github.com/shopspring/decimal"

type TransactionVolume struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	AverageAmount     decimal.Decimal `json:"averageAmount"`
	Period            string          `json:"period"`
}

type SuccessRate struct {
	TotalTransactions int64            `json:"totalTransactions"`
	CompletedCount    int64            `json:"completedCount"`
	PendingCount      int64            `json:"pendingCount"`
	FailedCount       int64            `json:"failedCount"`
	ReversedCount     int64            `json:"reversedCount"`
	SuccessRate       float64          `json:"successRate"`
	StatusBreakdown   map[string]int64 `json:"statusBreakdown,omitempty"`
}

type TrendPoint struct {
	Date             string          `json:"date"`
	TransactionCount int64           `json:"transactionCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	SuccessRate      float64         `json:"successRate"`
}

type TransactionTrends struct {
	Trends    []TrendPoint `json:"trends"`
	Period    string       `json:"period"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
}

type HourlyActivity struct {
	Hour             int             `json:"hour"`
	TransactionCount int64           `json:"transactionCount"`
	AverageAmount    decimal.Decimal `json:"averageAmount"`
}

type DailyActivity struct {
	DayOfWeek        string          `json:"dayOfWeek"`
	TransactionCount int64           `json:"transactionCount"`
	AverageAmount    decimal.Decimal `json:"averageAmount"`
}

type PeakTimes struct {
	HourlyData []HourlyActivity `json:"hourlyData"`
	DailyData  []DailyActivity  `json:"dailyData"`
	PeakHour   int              `json:"peakHour"`
	PeakDay    string           `json:"peakDay"`
}

type CardTypeShare struct {
	CardType    string          `json:"cardType"`
	Count       int64           `json:"count"`
	Percentage  float64         `json:"percentage"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type CardDistribution struct {
	Distribution      []CardTypeShare `json:"distribution"`
	TotalTransactions int64           `json:"totalTransactions"`
	Period            string          `json:"period"`
}
