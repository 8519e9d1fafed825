package dto

import (
	"time"

	"github.com/pausalko/pausal-backend/internal/models"
)

// SaveCustomerRequest defines the data needed to create or update a customer.
type SaveCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Company string `json:"company"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country"`
	PIB     string `json:"pib"`
	MB      string `json:"mb"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID string    `json:"customerID"`
	Name       string    `json:"name"`
	Company    string    `json:"company"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	PIB        string    `json:"pib"`
	MB         string    `json:"mb"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ToCustomerResponse converts a models.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Company:    c.Company,
		Address:    c.Address,
		City:       c.City,
		Country:    c.Country,
		PIB:        c.PIB,
		MB:         c.MB,
		Email:      c.Email,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToListCustomerResponse converts a slice of models.Customer to DTOs.
func ToListCustomerResponse(customers []models.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}
