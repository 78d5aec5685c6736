package domain

import "time"

type InvoiceState string

const (
	InvoiceStateDraft  InvoiceState = "DRAFT"
	InvoiceStatePosted InvoiceState = "POSTED"
)

// Invoice is generated once per contract on closure. It starts in DRAFT;
// posting is a back-office concern outside this service.
type Invoice struct {
	ID          int32         `json:"id"`
	CustomerID  int32         `json:"customer_id"`
	ContractID  *int32        `json:"contract_id,omitempty"`
	InvoiceDate time.Time     `json:"invoice_date"`
	State       InvoiceState  `json:"state"`
	Lines       []InvoiceLine `json:"lines"`
	CreatedOn   time.Time     `json:"created_on"`
}

type InvoiceLine struct {
	ID             int32   `json:"id"`
	InvoiceID      int32   `json:"invoice_id"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
}

// TotalCents sums the invoice lines.
func (i *Invoice) TotalCents() int64 {
	var total int64
	for _, l := range i.Lines {
		total += int64(l.Quantity * float64(l.UnitPriceCents))
	}
	return total
}
