package postgres

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"

	"adsync/internal/core/domain"
)

var big10 = big.NewInt(10)

// moneyToNumeric converts cents to a NUMERIC with two fractional digits, so
// 1234 cents is stored as 12.34 without a float round trip.
func moneyToNumeric(m *domain.Money) pgtype.Numeric {
	if m == nil {
		return pgtype.Numeric{}
	}
	return pgtype.Numeric{Int: big.NewInt(int64(*m)), Exp: -2, Valid: true}
}

func numericToMoney(n pgtype.Numeric) (*domain.Money, error) {
	if !n.Valid {
		return nil, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("non-finite amount")
	}

	v := new(big.Int).Set(n.Int)
	for exp := n.Exp; exp > -2; exp-- {
		v.Mul(v, big10)
	}
	for exp := n.Exp; exp < -2; exp++ {
		v.Quo(v, big10)
	}
	if !v.IsInt64() {
		return nil, fmt.Errorf("amount out of range")
	}
	m := domain.Money(v.Int64())
	return &m, nil
}
