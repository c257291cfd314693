package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"country-catalog/core/errs"
	"country-catalog/feature/countries/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// stubCountries is a fixed-output CountrySource.
type stubCountries struct {
	countries []models.NormalizedCountry
	err       error
}

func (s *stubCountries) FetchCountries(ctx context.Context) ([]models.NormalizedCountry, error) {
	return s.countries, s.err
}

// stubRates is a fixed-output RateSource.
type stubRates struct {
	rates map[string]float64
	err   error
}

func (s *stubRates) FetchRates(ctx context.Context) (map[string]float64, error) {
	return s.rates, s.err
}

func fixedMultiplier(v float64) MultiplierSource {
	return func() float64 { return v }
}

func normalized(name, code string, population int64) models.NormalizedCountry {
	nc := models.NormalizedCountry{Name: name, Population: population}
	if code != "" {
		nc.CurrencyCode = &code
	}
	return nc
}

func TestRefresh_AddsAndUpdates(t *testing.T) {
	db, mock := setupMockDB(t)

	countries := &stubCountries{countries: []models.NormalizedCountry{
		normalized("Nigeria", "NGN", 206139589),
		normalized("Atlantis", "", 0),
	}}
	rates := &stubRates{rates: map[string]float64{"NGN": 1600}}

	engine := NewEngine(countries, rates, db, zap.NewNop(), Config{}).
		WithMultiplier(fixedMultiplier(1500))

	mock.ExpectBegin()
	// Nigeria already exists: all mutable fields are overwritten.
	existing := sqlmock.NewRows([]string{"id", "name", "population"}).
		AddRow(7, "Nigeria", 1)
	mock.ExpectQuery("SELECT \\* FROM `countries` WHERE LOWER\\(name\\) = LOWER\\(\\?\\)").
		WillReturnRows(existing)
	mock.ExpectExec("UPDATE `countries` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Atlantis is new.
	mock.ExpectQuery("SELECT \\* FROM `countries` WHERE LOWER\\(name\\) = LOWER\\(\\?\\)").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `countries`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefresh_CaseInsensitiveIdentity(t *testing.T) {
	db, mock := setupMockDB(t)

	// The feed shouts, the catalog doesn't: same identity, so no new row.
	countries := &stubCountries{countries: []models.NormalizedCountry{
		normalized("NIGERIA", "NGN", 206139589),
	}}
	rates := &stubRates{rates: map[string]float64{}}

	engine := NewEngine(countries, rates, db, zap.NewNop(), Config{})

	mock.ExpectBegin()
	existing := sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Nigeria")
	mock.ExpectQuery("SELECT \\* FROM `countries` WHERE LOWER\\(name\\) = LOWER\\(\\?\\)").
		WithArgs("NIGERIA").
		WillReturnRows(existing)
	mock.ExpectExec("UPDATE `countries` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := engine.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefresh_SourceFailureAbortsBeforeStore(t *testing.T) {
	db, mock := setupMockDB(t)

	countries := &stubCountries{countries: []models.NormalizedCountry{
		normalized("Nigeria", "NGN", 1),
	}}
	rates := &stubRates{err: &errs.ExternalSourceError{Source: "rates", Err: errors.New("timeout")}}

	engine := NewEngine(countries, rates, db, zap.NewNop(), Config{})

	_, err := engine.Refresh(context.Background())
	require.Error(t, err)

	var srcErr *errs.ExternalSourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "rates", srcErr.Source)

	// No transaction was ever opened.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefresh_RollbackOnPersistenceFailure(t *testing.T) {
	db, mock := setupMockDB(t)

	countries := &stubCountries{countries: []models.NormalizedCountry{
		normalized("Nigeria", "NGN", 1000),
		normalized("Ghana", "GHS", 2000),
	}}
	rates := &stubRates{rates: map[string]float64{}}

	engine := NewEngine(countries, rates, db, zap.NewNop(), Config{})

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `countries` WHERE LOWER\\(name\\) = LOWER\\(\\?\\)").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `countries`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := engine.Refresh(context.Background())
	require.Error(t, err)

	var persistErr *errs.PersistenceError
	require.ErrorAs(t, err, &persistErr)

	// Nothing from the batch survives; the second country was never attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildEntry_DerivedGDP(t *testing.T) {
	db, _ := setupMockDB(t)
	engine := NewEngine(&stubCountries{}, &stubRates{}, db, zap.NewNop(), Config{}).
		WithMultiplier(fixedMultiplier(1500))

	now := time.Now().UTC()

	t.Run("ResolvedRate", func(t *testing.T) {
		entry := engine.buildEntry(normalized("Testland", "NGN", 1000000), map[string]float64{"NGN": 2.0}, now)
		require.NotNil(t, entry.ExchangeRate)
		assert.Equal(t, 2.0, *entry.ExchangeRate)
		require.NotNil(t, entry.EstimatedGDP)
		assert.Equal(t, 750000000.0, *entry.EstimatedGDP)
	})

	t.Run("UniformRange", func(t *testing.T) {
		ranged := NewEngine(&stubCountries{}, &stubRates{}, db, zap.NewNop(), Config{})
		for i := 0; i < 50; i++ {
			entry := ranged.buildEntry(normalized("Testland", "NGN", 1000000), map[string]float64{"NGN": 2.0}, now)
			require.NotNil(t, entry.EstimatedGDP)
			assert.GreaterOrEqual(t, *entry.EstimatedGDP, 500000000.0)
			assert.Less(t, *entry.EstimatedGDP, 1000000000.0)
		}
	})

	t.Run("NoCurrency", func(t *testing.T) {
		entry := engine.buildEntry(normalized("Testland", "", 1000000), map[string]float64{"NGN": 2.0}, now)
		assert.Nil(t, entry.ExchangeRate)
		assert.Nil(t, entry.EstimatedGDP)
	})

	t.Run("UnresolvableRate", func(t *testing.T) {
		entry := engine.buildEntry(normalized("Testland", "XXX", 1000000), map[string]float64{"NGN": 2.0}, now)
		assert.Nil(t, entry.ExchangeRate)
		assert.Nil(t, entry.EstimatedGDP)
	})

	t.Run("NonPositiveRate", func(t *testing.T) {
		entry := engine.buildEntry(normalized("Testland", "NGN", 1000000), map[string]float64{"NGN": 0}, now)
		assert.Nil(t, entry.ExchangeRate)
		assert.Nil(t, entry.EstimatedGDP)
	})

	t.Run("ZeroPopulation", func(t *testing.T) {
		entry := engine.buildEntry(normalized("Testland", "NGN", 0), map[string]float64{"NGN": 2.0}, now)
		require.NotNil(t, entry.ExchangeRate)
		assert.Nil(t, entry.EstimatedGDP)
	})
}
