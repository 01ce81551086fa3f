package repositories

import (
	"context"
	"testing"
	"time"

	"khazina/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceRepository_GetByKarat(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	rows := sqlmock.NewRows([]string{"karat", "price_per_gram_qar", "change_amount", "change_percent", "source_usd_per_oz", "updated_at"}).
		AddRow(24, 278.53, 1.2, 0.43, 2380.0, time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "gold_prices" WHERE karat =`).
		WithArgs(24, 1).
		WillReturnRows(rows)

	price, err := repo.GetByKarat(context.Background(), 24)
	require.NoError(t, err)
	assert.Equal(t, 24, price.Karat)
	assert.Equal(t, 278.53, price.PricePerGramQAR)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceRepository_GetByKaratMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "gold_prices" WHERE karat =`).
		WithArgs(14, 1).
		WillReturnRows(sqlmock.NewRows([]string{"karat"}))

	_, err := repo.GetByKarat(context.Background(), 14)
	assert.ErrorIs(t, err, ErrPriceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceRepository_UpsertConflictsOnKarat(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	existing := sqlmock.NewRows([]string{"karat", "price_per_gram_qar"}).
		AddRow(24, 278.53)
	mock.ExpectQuery(`SELECT \* FROM "gold_prices" ORDER BY karat DESC`).
		WillReturnRows(existing)

	// A second refresh for the same karat must update the one row in place,
	// never insert a duplicate.
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "gold_prices" .* ON CONFLICT \("karat"\) DO UPDATE SET .*"price_per_gram_qar"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	changed, err := repo.Upsert(context.Background(), []models.GoldPrice{
		{Karat: 24, PricePerGramQAR: 280.00, SourceUSDPerOz: 2392.5, UpdatedAt: time.Now().UTC()},
	})
	require.NoError(t, err)
	assert.True(t, changed, "a 1.47 QAR move is above the epsilon")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceRepository_UpsertSamePriceReportsNoChange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	existing := sqlmock.NewRows([]string{"karat", "price_per_gram_qar"}).
		AddRow(24, 278.53)
	mock.ExpectQuery(`SELECT \* FROM "gold_prices" ORDER BY karat DESC`).
		WillReturnRows(existing)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "gold_prices" .* ON CONFLICT \("karat"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	changed, err := repo.Upsert(context.Background(), []models.GoldPrice{
		{Karat: 24, PricePerGramQAR: 278.53, SourceUSDPerOz: 2380.0, UpdatedAt: time.Now().UTC()},
	})
	require.NoError(t, err)
	assert.False(t, changed, "sub-epsilon moves must not wake the alert evaluator")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceRepository_GetCurrentOrdersByKarat(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPriceRepository(db)

	rows := sqlmock.NewRows([]string{"karat", "price_per_gram_qar"}).
		AddRow(24, 278.53).
		AddRow(22, 255.32).
		AddRow(21, 243.71).
		AddRow(18, 208.90)
	mock.ExpectQuery(`SELECT \* FROM "gold_prices" ORDER BY karat DESC`).
		WillReturnRows(rows)

	prices, err := repo.GetCurrent(context.Background())
	require.NoError(t, err)
	require.Len(t, prices, 4)
	assert.Equal(t, 24, prices[0].Karat)
	assert.Equal(t, 18, prices[3].Karat)
	assert.NoError(t, mock.ExpectationsWereMet())
}
