package models

// CompanySettings is the single row of issuer details printed on invoices.
type CompanySettings struct {
	SettingsID  string `json:"settingsID"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PIB         string `json:"pib"`
	MB          string `json:"mb"`
	IBAN        string `json:"iban"`
	SWIFT       string `json:"swift"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	LogoURL     string `json:"logoURL"`
	AuditFields
}

// BankAccount is one of the issuer's accounts; at most one is the default.
type BankAccount struct {
	BankAccountID string `json:"bankAccountID"`
	AccountName   string `json:"accountName"`
	IBAN          string `json:"iban"`
	SWIFT         string `json:"swift"`
	BankName      string `json:"bankName"`
	IsDefault     bool   `json:"isDefault"`
	AuditFields
}
