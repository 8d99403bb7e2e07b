package models

import "github.com/shopspring/decimal"

type MerchantStats struct {
	MerchantID               string          `json:"merchantId"`
	MerchantName             string          `json:"merchantName"`
	TotalTransactions        int64           `json:"totalTransactions"`
	TotalRevenue             decimal.Decimal `json:"totalRevenue"`
	CompletedCount           int64           `json:"completedCount"`
	FailedCount              int64           `json:"failedCount"`
	PendingCount             int64           `json:"pendingCount"`
	SuccessRate              float64         `json:"successRate"`
	LastTransactionDate      string          `json:"lastTransactionDate"`
	FirstTransactionDate     string          `json:"firstTransactionDate"`
	Status                   string          `json:"status"`
	AverageTransactionAmount decimal.Decimal `json:"averageTransactionAmount"`
}

// PaginationInfo is the offset/limit envelope returned by /merchants.
type PaginationInfo struct {
	Total       int  `json:"total"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

type MerchantList struct {
	Merchants  []MerchantStats `json:"merchants"`
	Pagination PaginationInfo  `json:"pagination"`
}

// MerchantDetails is the profile returned by /merchants/{id}/details.
type MerchantDetails struct {
	MerchantStats
	BusinessName       string `json:"businessName,omitempty"`
	BusinessType       string `json:"businessType,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Website            string `json:"website,omitempty"`
	Address            string `json:"address,omitempty"`
	AddressLine1       string `json:"addressLine1,omitempty"`
	City               string `json:"city,omitempty"`
	Country            string `json:"country,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Industry           string `json:"industry,omitempty"`
	RiskLevel          string `json:"riskLevel,omitempty"`
}

// MerchantRequest is the payload for creating or updating a merchant.
// Empty fields are omitted so an update only touches what was supplied.
type MerchantRequest struct {
	MerchantName       string `json:"merchantName,omitempty"`
	BusinessName       string `json:"businessName,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Address            string `json:"address,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Status             string `json:"status,omitempty"`
}

// MerchantStatuses are the lifecycle states the API accepts.
var MerchantStatuses = []string{"active", "inactive", "suspended", "pending"}
