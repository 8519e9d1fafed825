package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/services"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Test Suite ---
type CustomerServiceTestSuite struct {
	suite.Suite
	mockCustomerRepo *MockCustomerRepository
	mockInvoiceRepo  *MockInvoiceRepository
	service          *services.CustomerService
}

func (suite *CustomerServiceTestSuite) SetupTest() {
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewCustomerService(suite.mockCustomerRepo, suite.mockInvoiceRepo)
}

// --- Test Cases ---

func (suite *CustomerServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.SaveCustomerRequest{
		Name:    "Acme d.o.o.",
		Address: "Bulevar 1",
		City:    "Novi Sad",
		PIB:     "123456789",
	}

	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c models.Customer) bool {
		return c.Name == req.Name && c.CustomerID != "" && !c.CreatedAt.IsZero()
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(req.Name, customer.Name)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestCreateCustomer_DefaultsCountry() {
	ctx := context.Background()
	req := dto.SaveCustomerRequest{Name: "Acme", Address: "A", City: "B"}

	suite.mockCustomerRepo.On("SaveCustomer", ctx, mock.MatchedBy(func(c models.Customer) bool {
		return c.Country == "Serbia"
	})).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("Serbia", customer.Country)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestUpdateCustomer_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	customer, err := suite.service.UpdateCustomer(ctx, customerID, dto.SaveCustomerRequest{Name: "X"})

	suite.Require().Error(err)
	suite.Nil(customer)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "UpdateCustomer")
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_RefusedWithInvoices() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &models.Customer{CustomerID: customerID}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("CountByCustomer", ctx, customerID).Return(3, nil).Once()

	err := suite.service.DeleteCustomer(ctx, customerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "3")
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "DeleteCustomer")
}

func (suite *CustomerServiceTestSuite) TestDeleteCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &models.Customer{CustomerID: customerID}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("CountByCustomer", ctx, customerID).Return(0, nil).Once()
	suite.mockCustomerRepo.On("DeleteCustomer", ctx, customerID).Return(nil).Once()

	err := suite.service.DeleteCustomer(ctx, customerID)

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *CustomerServiceTestSuite) TestListCustomers_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockCustomerRepo.On("ListCustomers", ctx).Return(nil, nil).Once()

	customers, err := suite.service.ListCustomers(ctx)

	suite.Require().NoError(err)
	suite.NotNil(customers)
	suite.Empty(customers)
}

// --- Run Suite ---
func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceTestSuite))
}
