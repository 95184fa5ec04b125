package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleType identifies the channel a sale came through.
type SaleType string

const (
	SalePublisher   SaleType = "PUBLISHER_SALE"
	SaleDirect      SaleType = "DIRECT_SALE"
	SaleOnlineStore SaleType = "ONLINE_STORE"
	SaleOther       SaleType = "OTHER"
)

// SaleTypes lists every channel in report order.
var SaleTypes = []SaleType{SalePublisher, SaleDirect, SaleOnlineStore, SaleOther}

// ErrUnknownSaleType is returned when decoding a sale type string that is not in the enumeration.
var ErrUnknownSaleType = errors.New("unknown sale type")

// ParseSaleType decodes a stored or submitted sale type (case-insensitive).
func ParseSaleType(s string) (SaleType, error) {
	t := SaleType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSaleType, s)
	}
	return t, nil
}

// IsValid reports whether t is one of the known sale types.
func (t SaleType) IsValid() bool {
	switch t {
	case SalePublisher, SaleDirect, SaleOnlineStore, SaleOther:
		return true
	}
	return false
}

// Normalize maps unknown sale types to OTHER.
func (t SaleType) Normalize() SaleType {
	if t.IsValid() {
		return t
	}
	return SaleOther
}

// Label returns a display name such as "Online Store".
func (t SaleType) Label() string {
	return enumLabel(string(t.Normalize()))
}

// Sale records units of a book sold (or given away) through a channel.
// TotalAmount is trusted as stored; it is not recomputed from Quantity and UnitPrice.
type Sale struct {
	ID             string              `json:"id"`
	BookID         string              `json:"bookId"`
	Type           SaleType            `json:"type"`
	Platform       string              `json:"platform"`
	Quantity       int                 `json:"quantity"`
	UnitPrice      decimal.Decimal     `json:"unitPrice"`
	TotalAmount    decimal.Decimal     `json:"totalAmount"`
	DonationAmount decimal.Decimal     `json:"donationAmount"`
	IsGiveaway     bool                `json:"isGiveaway"`
	RoyaltyRate    decimal.NullDecimal `json:"royaltyRate"`
	RoyaltyAmount  decimal.NullDecimal `json:"royaltyAmount"`
	PublisherCut   decimal.Decimal     `json:"publisherCut"`
	PlatformFees   decimal.Decimal     `json:"platformFees"`
	Date           time.Time           `json:"date"`
	CreatedAt      time.Time           `json:"createdAt,omitempty"`
}

// ExpectedTotal returns Quantity x UnitPrice.
func (s Sale) ExpectedTotal() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// SaleFilter narrows sale queries. Zero values disable a criterion.
type SaleFilter struct {
	BookID    string
	StartDate time.Time
	EndDate   time.Time
	Type      SaleType
}
