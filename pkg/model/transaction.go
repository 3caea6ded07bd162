package model

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusPaid      PaymentStatus = "PAID"
	StatusCancelled PaymentStatus = "CANCELLED"
)

// TransactionItem is a settled line item as reported by the ledger.
type TransactionItem struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
}

// Transaction is a sale record. When it comes from the remote ledger it is
// canonical; when synthesized for a queued sale its TransactionCode carries a
// LOCAL marker and its Status is PENDING.
type Transaction struct {
	ID              string            `json:"id"`
	TransactionCode string            `json:"transactionCode"`
	UserID          string            `json:"userId"`
	Subtotal        float64           `json:"subtotal"`
	Tax             float64           `json:"tax"`
	Discount        float64           `json:"discount"`
	Total           float64           `json:"total"`
	Status          PaymentStatus     `json:"status"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	CreatedAt       time.Time         `json:"createdAt"`
	Items           []TransactionItem `json:"items"`
}

// CreateTransactionItem is a line item of a transaction-creation request.
type CreateTransactionItem struct {
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Quantity    int      `json:"quantity"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
}

// CreateTransactionRequest is the frozen payload of a finalized sale. It is
// immutable once enqueued. ClientReference is a stable client-generated id
// carried on every send of the same sale so the server can deduplicate
// re-sends whose previous outcome was unknown.
type CreateTransactionRequest struct {
	Items           []CreateTransactionItem `json:"items"`
	Subtotal        float64                 `json:"subtotal"`
	Tax             float64                 `json:"tax"`
	Discount        float64                 `json:"discount"`
	Total           float64                 `json:"total"`
	PaymentMethod   PaymentMethod           `json:"paymentMethod"`
	ClientReference string                  `json:"clientReference,omitempty"`
}

// TransactionFilters narrows remote transaction listings.
type TransactionFilters struct {
	Page          int
	Limit         int
	Status        PaymentStatus
	PaymentMethod PaymentMethod
	StartDate     string
	EndDate       string
}

// Pagination describes a page of a remote listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TransactionPage is one page of remote transactions.
type TransactionPage struct {
	Data       []Transaction
	Pagination *Pagination
}
