package request

import "github.com/shopspring/decimal"

// CreateSaleRequest carries a new sale. When totalAmount is omitted it defaults to
// quantity x unitPrice.
type CreateSaleRequest struct {
	BookID         string              `json:"bookId"`
	Type           string              `json:"type"`
	Platform       string              `json:"platform"`
	Quantity       int                 `json:"quantity"`
	UnitPrice      decimal.Decimal     `json:"unitPrice"`
	TotalAmount    *decimal.Decimal    `json:"totalAmount,omitempty"`
	DonationAmount decimal.Decimal     `json:"donationAmount"`
	IsGiveaway     bool                `json:"isGiveaway"`
	RoyaltyRate    decimal.NullDecimal `json:"royaltyRate"`
	RoyaltyAmount  decimal.NullDecimal `json:"royaltyAmount"`
	PublisherCut   decimal.Decimal     `json:"publisherCut"`
	PlatformFees   decimal.Decimal     `json:"platformFees"`
	Date           string              `json:"date"`
}

type UpdateSaleRequest struct {
	BookID         *string          `json:"bookId,omitempty"`
	Type           *string          `json:"type,omitempty"`
	Platform       *string          `json:"platform,omitempty"`
	Quantity       *int             `json:"quantity,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalAmount    *decimal.Decimal `json:"totalAmount,omitempty"`
	DonationAmount *decimal.Decimal `json:"donationAmount,omitempty"`
	IsGiveaway     *bool            `json:"isGiveaway,omitempty"`
	RoyaltyRate    *decimal.Decimal `json:"royaltyRate,omitempty"`
	RoyaltyAmount  *decimal.Decimal `json:"royaltyAmount,omitempty"`
	PublisherCut   *decimal.Decimal `json:"publisherCut,omitempty"`
	PlatformFees   *decimal.Decimal `json:"platformFees,omitempty"`
	Date           *string          `json:"date,omitempty"`
}
