package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "gemtrade/internal/errors"
)

// moneyScale is the number of decimal places kept for every stored amount.
const moneyScale = 8

// checkScale rejects amounts that would be rounded when stored, so a
// response never reports a value the ledger does not hold.
func checkScale(amount decimal.Decimal, label string) error {
	if !amount.Equal(amount.Round(moneyScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("%s cannot have more than %d decimal places", label, moneyScale))
	}
	return nil
}
