package domain

// Category labels transactions for budgeting and reporting.
// A transaction's category conventionally shares its type, but this is not
// enforced at the data level; mismatches are tolerated.
type Category struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon"`
	Type       TransactionType `json:"type"`
	AuditFields
}
