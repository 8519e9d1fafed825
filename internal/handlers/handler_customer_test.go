package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/handlers"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/pausalko/pausal-backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.SaveCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.SaveCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

var _ ports.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Test Suite ---
type CustomerHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockCustomerService
	cfg         *config.Config
	token       string
}

func (suite *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.cfg = &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
		IsProduction:      true, // skip swagger wiring
	}
	suite.mockService = new(MockCustomerService)

	services := &ports.ServiceContainer{Customer: suite.mockService}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, services)

	claims := jwt.RegisteredClaims{
		Issuer:    suite.cfg.JWTIssuer,
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.cfg.JWTSecret))
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *CustomerHandlerTestSuite) request(method, path string, body []byte, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+suite.token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CustomerHandlerTestSuite) TestListCustomers_RequiresAuth() {
	w := suite.request(http.MethodGet, "/api/v1/customers", nil, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListCustomers")
}

func (suite *CustomerHandlerTestSuite) TestListCustomers_Success() {
	customers := []models.Customer{{CustomerID: uuid.NewString(), Name: "Acme"}}
	suite.mockService.On("ListCustomers", mock.Anything).Return(customers, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/customers", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Acme", resp[0].Name)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_NotFound() {
	customerID := uuid.NewString()
	suite.mockService.On("GetCustomerByID", mock.Anything, customerID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.request(http.MethodGet, "/api/v1/customers/"+customerID, nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_Success() {
	body := []byte(`{"name": "Acme d.o.o.", "address": "Bulevar 1", "city": "Novi Sad"}`)
	created := &models.Customer{CustomerID: uuid.NewString(), Name: "Acme d.o.o."}

	suite.mockService.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(req dto.SaveCustomerRequest) bool {
		return req.Name == "Acme d.o.o."
	})).Return(created, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/customers", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_MissingRequiredFields() {
	body := []byte(`{"company": "No name"}`)

	w := suite.request(http.MethodPost, "/api/v1/customers", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateCustomer")
}

func (suite *CustomerHandlerTestSuite) TestDeleteCustomer_RefusedWithInvoices() {
	customerID := uuid.NewString()
	refusal := apperrors.ErrValidation
	suite.mockService.On("DeleteCustomer", mock.Anything, customerID).Return(refusal).Once()

	w := suite.request(http.MethodDelete, "/api/v1/customers/"+customerID, nil, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestCustomerHandler(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
