package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promoRowColumns = []string{
	"id", "code", "discount_type", "discount_value", "min_purchase",
	"max_uses", "current_uses", "valid_from", "valid_until", "is_active", "created_at",
}

func TestPromoRepository_GetActiveByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM promo_codes WHERE code = \$1 AND is_active = true`).
		WithArgs("SPRING10").
		WillReturnRows(sqlmock.NewRows(promoRowColumns).
			AddRow(int64(3), "SPRING10", "percentage", "10", "0", int64(100), int64(4), from, nil, true, from))

	promo, err := NewPromoRepository(db).GetActiveByCode(context.Background(), "SPRING10")
	require.NoError(t, err)
	assert.Equal(t, "percentage", promo.DiscountType)
	require.NotNil(t, promo.MaxUses)
	assert.Equal(t, 100, *promo.MaxUses)
	assert.Equal(t, 4, promo.CurrentUses)
	assert.Nil(t, promo.ValidUntil)
}

func TestPromoRepository_GetActiveByCodeNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM promo_codes`).WithArgs("NOPE").WillReturnRows(sqlmock.NewRows(promoRowColumns))

	_, err = NewPromoRepository(db).GetActiveByCode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromoRepository_IncrementUsesIsSingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE promo_codes SET current_uses = COALESCE\(current_uses, 0\) \+ 1 WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPromoRepository(db).IncrementUses(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoRepository_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM promo_codes`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewPromoRepository(db).Delete(context.Background(), 9), ErrNotFound)
}
