package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/core/services"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveRates(ctx context.Context, rates []models.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindByDate(ctx context.Context, date time.Time) ([]models.ExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindByCodeAndDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestByCode(ctx context.Context, currencyCode string) (*models.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestDateRates(ctx context.Context) ([]models.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindHistory(ctx context.Context, currencyCode string, from, to time.Time) ([]models.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

// --- Mock NBSClient ---
type MockNBSClient struct {
	mock.Mock
}

func (m *MockNBSClient) FetchDaily(ctx context.Context, date time.Time) ([]models.ExchangeRate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	mockNBS  *MockNBSClient
	service  *services.ExchangeRateService
	today    time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.mockNBS = new(MockNBSClient)
	suite.today = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return time.Date(2026, 3, 16, 10, 30, 0, 0, time.UTC) }
	suite.service = services.NewExchangeRateService(suite.mockRepo, suite.mockNBS, services.WithClock(clock))
}

func validRate(code string, middle string, unit int, date time.Time) models.ExchangeRate {
	return models.ExchangeRate{
		CurrencyCode: code,
		MiddleRate:   decimal.NullDecimal{Decimal: decimal.RequireFromString(middle), Valid: true},
		RateDate:     date,
		Unit:         unit,
	}
}

// --- ResolveRate ---

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_RSDIsAlwaysUnit() {
	ctx := context.Background()

	resolved, err := suite.service.ResolveRate(ctx, "RSD", nil)

	suite.Require().NoError(err)
	suite.Equal("RSD", resolved.CurrencyCode)
	suite.True(resolved.MiddleRate.Equal(decimal.NewFromInt(1)))
	suite.Equal(1, resolved.Unit)
	suite.Equal(models.RateSourceUnit, resolved.Source)
	// The store must never be touched for RSD.
	suite.mockRepo.AssertNotCalled(suite.T(), "FindByCodeAndDate")
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_ExactDateHit() {
	ctx := context.Background()
	row := validRate("EUR", "117.2", 1, suite.today)

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(&row, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "eur", nil)

	suite.Require().NoError(err)
	suite.Equal("EUR", resolved.CurrencyCode)
	suite.True(resolved.MiddleRate.Equal(decimal.RequireFromString("117.2")))
	suite.Equal(models.RateSourceCached, resolved.Source)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_FallsBackToLatestRow() {
	ctx := context.Background()
	stale := validRate("EUR", "117.5", 1, suite.today.AddDate(0, 0, -3))

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestByCode", ctx, "EUR").Return(&stale, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "EUR", nil)

	suite.Require().NoError(err)
	suite.True(resolved.MiddleRate.Equal(decimal.RequireFromString("117.5")))
	suite.Equal(models.RateSourceCached, resolved.Source)
	suite.Equal(stale.RateDate, resolved.RateDate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_StaticFallbackTable() {
	ctx := context.Background()

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestByCode", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveRate(ctx, "EUR", nil)

	suite.Require().NoError(err)
	suite.True(resolved.MiddleRate.Equal(decimal.RequireFromString("117.2")))
	suite.Equal(models.RateSourceFallback, resolved.Source)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_UnknownCurrencyDefaultsToOne() {
	ctx := context.Background()

	suite.mockRepo.On("FindByCodeAndDate", ctx, "XXX", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindLatestByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveRate(ctx, "XXX", nil)

	suite.Require().NoError(err)
	suite.True(resolved.MiddleRate.Equal(decimal.NewFromInt(1)))
	suite.Equal(models.RateSourceDefault, resolved.Source)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NullMiddleRateIsAMiss() {
	ctx := context.Background()
	nullRow := models.ExchangeRate{CurrencyCode: "EUR", RateDate: suite.today, Unit: 1}
	stale := validRate("EUR", "117.1", 1, suite.today.AddDate(0, 0, -1))

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(&nullRow, nil).Once()
	suite.mockRepo.On("FindLatestByCode", ctx, "EUR").Return(&stale, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "EUR", nil)

	suite.Require().NoError(err)
	suite.True(resolved.MiddleRate.Equal(decimal.RequireFromString("117.1")))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_ExplicitDateTriggersFetch() {
	ctx := context.Background()
	date := suite.today.AddDate(0, 0, -5)
	fetched := []models.ExchangeRate{validRate("USD", "108.5", 1, date)}

	suite.mockRepo.On("FindByCodeAndDate", ctx, "USD", date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("FindByDate", ctx, date).Return([]models.ExchangeRate{}, nil).Once()
	suite.mockNBS.On("FetchDaily", ctx, date).Return(fetched, nil).Once()
	suite.mockRepo.On("SaveRates", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "USD", &date)

	suite.Require().NoError(err)
	suite.True(resolved.MiddleRate.Equal(decimal.RequireFromString("108.5")))
	suite.Equal(models.RateSourceFetched, resolved.Source)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNBS.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_RepoErrorPropagates() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(nil, expectedErr).Once()

	_, err := suite.service.ResolveRate(ctx, "EUR", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- FetchRates ---

func (suite *ExchangeRateServiceTestSuite) TestFetchRates_PrefersCachedRows() {
	ctx := context.Background()
	cached := []models.ExchangeRate{validRate("EUR", "117.2", 1, suite.today)}

	suite.mockRepo.On("FindByDate", ctx, suite.today).Return(cached, nil).Once()

	rates, err := suite.service.FetchRates(ctx, nil)

	suite.Require().NoError(err)
	suite.Equal(cached, rates)
	suite.mockNBS.AssertNotCalled(suite.T(), "FetchDaily")
}

func (suite *ExchangeRateServiceTestSuite) TestFetchRates_FetchesAndStores() {
	ctx := context.Background()
	fetched := []models.ExchangeRate{validRate("EUR", "117.2", 1, suite.today)}

	suite.mockRepo.On("FindByDate", ctx, suite.today).Return([]models.ExchangeRate{}, nil).Once()
	suite.mockNBS.On("FetchDaily", ctx, suite.today).Return(fetched, nil).Once()
	suite.mockRepo.On("SaveRates", ctx, mock.MatchedBy(func(rates []models.ExchangeRate) bool {
		return len(rates) == 1 && rates[0].ExchangeRateID != "" && !rates[0].CreatedAt.IsZero()
	})).Return(nil).Once()

	rates, err := suite.service.FetchRates(ctx, nil)

	suite.Require().NoError(err)
	suite.Len(rates, 1)
	suite.NotEmpty(rates[0].ExchangeRateID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockNBS.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestFetchRates_WalksBackOverNonTradingDays() {
	ctx := context.Background()
	monday := suite.today
	sunday := monday.AddDate(0, 0, -1)
	saturday := monday.AddDate(0, 0, -2)
	friday := monday.AddDate(0, 0, -3)
	fetched := []models.ExchangeRate{validRate("EUR", "117.2", 1, friday)}

	for _, day := range []time.Time{monday, sunday, saturday, friday} {
		suite.mockRepo.On("FindByDate", ctx, day).Return([]models.ExchangeRate{}, nil).Once()
	}
	suite.mockNBS.On("FetchDaily", ctx, monday).Return(nil, ports.ErrNoRatesForDate).Once()
	suite.mockNBS.On("FetchDaily", ctx, sunday).Return(nil, ports.ErrNoRatesForDate).Once()
	suite.mockNBS.On("FetchDaily", ctx, saturday).Return(nil, ports.ErrNoRatesForDate).Once()
	suite.mockNBS.On("FetchDaily", ctx, friday).Return(fetched, nil).Once()
	suite.mockRepo.On("SaveRates", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	rates, err := suite.service.FetchRates(ctx, nil)

	suite.Require().NoError(err)
	suite.Len(rates, 1)
	suite.Equal(friday, rates[0].RateDate)
	suite.mockNBS.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestFetchRates_WalkbackIsBounded() {
	ctx := context.Background()

	suite.mockRepo.On("FindByDate", ctx, mock.AnythingOfType("time.Time")).Return([]models.ExchangeRate{}, nil).Times(10)
	suite.mockNBS.On("FetchDaily", ctx, mock.AnythingOfType("time.Time")).Return(nil, ports.ErrNoRatesForDate).Times(10)

	rates, err := suite.service.FetchRates(ctx, nil)

	suite.Require().NoError(err)
	// After exhausting the walk-back the static fallback table is returned.
	suite.Len(rates, 4)
	suite.mockNBS.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveRates")
}

func (suite *ExchangeRateServiceTestSuite) TestFetchRates_SourceOutageDegradesToFallback() {
	ctx := context.Background()

	suite.mockRepo.On("FindByDate", ctx, suite.today).Return([]models.ExchangeRate{}, nil).Once()
	suite.mockNBS.On("FetchDaily", ctx, suite.today).Return(nil, assert.AnError).Once()

	rates, err := suite.service.FetchRates(ctx, nil)

	suite.Require().NoError(err)
	suite.Len(rates, 4)
	suite.Equal("EUR", rates[0].CurrencyCode)
	suite.True(rates[0].MiddleRate.Decimal.Equal(decimal.RequireFromString("117.2")))
}

func (suite *ExchangeRateServiceTestSuite) TestFetchRates_StoreFailurePropagates() {
	ctx := context.Background()
	fetched := []models.ExchangeRate{validRate("EUR", "117.2", 1, suite.today)}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindByDate", ctx, suite.today).Return([]models.ExchangeRate{}, nil).Once()
	suite.mockNBS.On("FetchDaily", ctx, suite.today).Return(fetched, nil).Once()
	suite.mockRepo.On("SaveRates", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(expectedErr).Once()

	_, err := suite.service.FetchRates(ctx, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Convert ---

func (suite *ExchangeRateServiceTestSuite) TestConvert_SameCurrencyIsIdentity() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.45")

	result, err := suite.service.Convert(ctx, amount, "EUR", "EUR", nil)

	suite.Require().NoError(err)
	suite.True(result.Equal(amount))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindByCodeAndDate")
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_ToRSDMultiplies() {
	ctx := context.Background()
	row := validRate("EUR", "117.2", 1, suite.today)

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(&row, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "EUR", "RSD", nil)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.RequireFromString("11720")), "got %s", result)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_FromRSDDivides() {
	ctx := context.Background()
	row := validRate("EUR", "117.2", 1, suite.today)

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(&row, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.RequireFromString("11720"), "RSD", "EUR", nil)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.NewFromInt(100)), "got %s", result)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_CrossCurrencyPivotsThroughRSD() {
	ctx := context.Background()
	eur := validRate("EUR", "117.2", 1, suite.today)
	usd := validRate("USD", "108.5", 1, suite.today)

	suite.mockRepo.On("FindByCodeAndDate", ctx, "EUR", suite.today).Return(&eur, nil).Once()
	suite.mockRepo.On("FindByCodeAndDate", ctx, "USD", suite.today).Return(&usd, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "EUR", "USD", nil)

	suite.Require().NoError(err)
	// 100 * 117.2 / 108.5 rounded to 4 decimals
	suite.True(result.Equal(decimal.RequireFromString("108.0184")), "got %s", result)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_NormalizesQuotedUnit() {
	ctx := context.Background()
	// JPY quoted per 100 units.
	jpy := validRate("JPY", "73.5", 100, suite.today)

	suite.mockRepo.On("FindByCodeAndDate", ctx, "JPY", suite.today).Return(&jpy, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(1000), "JPY", "RSD", nil)

	suite.Require().NoError(err)
	// 1000 * 73.5 / 100
	suite.True(result.Equal(decimal.RequireFromString("735")), "got %s", result)
}

// --- LatestRates ---

func (suite *ExchangeRateServiceTestSuite) TestLatestRates_FromStore() {
	ctx := context.Background()
	stored := []models.ExchangeRate{validRate("EUR", "117.2", 1, suite.today)}

	suite.mockRepo.On("FindLatestDateRates", ctx).Return(stored, nil).Once()

	rates, err := suite.service.LatestRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(stored, rates)
	suite.mockNBS.AssertNotCalled(suite.T(), "FetchDaily")
}

func (suite *ExchangeRateServiceTestSuite) TestLatestRates_EmptyStoreTriggersFetch() {
	ctx := context.Background()
	fetched := []models.ExchangeRate{validRate("EUR", "117.2", 1, suite.today)}

	suite.mockRepo.On("FindLatestDateRates", ctx).Return([]models.ExchangeRate{}, nil).Once()
	suite.mockRepo.On("FindByDate", ctx, suite.today).Return([]models.ExchangeRate{}, nil).Once()
	suite.mockNBS.On("FetchDaily", ctx, suite.today).Return(fetched, nil).Once()
	suite.mockRepo.On("SaveRates", ctx, mock.AnythingOfType("[]models.ExchangeRate")).Return(nil).Once()

	rates, err := suite.service.LatestRates(ctx)

	suite.Require().NoError(err)
	suite.Len(rates, 1)
	suite.mockNBS.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
