package models

// Customer represents a client that invoices are issued to.
// PIB is the Serbian tax identification number, MB the company registry number;
// both are optional because foreign customers have neither.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PIB        string `json:"pib"`
	MB         string `json:"mb"`
	Email      string `json:"email"`
	AuditFields
}
