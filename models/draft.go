package models

// DraftInput is the invoice header as entered on the billing form, before
// identities and totals are assigned.
type DraftInput struct {
	ReceiptNumber string           `json:"receipt_number"`
	Date          string           `json:"date"`
	PaymentMethod string           `json:"payment_method"`
	CustomerName  string           `json:"customer_name"`
	Address       string           `json:"address"`
	Telephone     string           `json:"telephone"`
	Email         string           `json:"email"`
	Items         []DraftItemInput `json:"items"`
}

// DraftItemInput is one form row. Quantity and price arrive as the raw text
// typed by the user; blank rows are allowed and filtered at commit.
type DraftItemInput struct {
	ItemNumber  string `json:"item_number"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

func (d *DraftInput) Validate() string {
	if d.CustomerName == "" {
		return "customer_name is required"
	}
	if d.Telephone == "" {
		return "telephone is required"
	}
	switch d.PaymentMethod {
	case "", "Cash", "Debit", "Credit", "Check":
	default:
		return "payment_method must be one of: Cash, Debit, Credit, Check"
	}
	if d.PaymentMethod == "" {
		d.PaymentMethod = "Cash"
	}
	for _, it := range d.Items {
		if it.Quantity != "" {
			if q, err := ParseQuantity(it.Quantity); err != nil || q < 0 {
				return "quantity must be a non-negative number"
			}
		}
		if it.UnitPrice != "" {
			if p, err := ParseMoney(it.UnitPrice); err != nil || p < 0 {
				return "unit_price must be a non-negative amount"
			}
		}
	}
	return ""
}
