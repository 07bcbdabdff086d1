package game

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCosmetic   = errors.New("unknown cosmetic")
	ErrAlreadyUnlocked   = errors.New("cosmetic already unlocked")
	ErrNotForSale        = errors.New("cosmetic is unlocked by wins, not sold")
	ErrInsufficientFunds = errors.New("insufficient gold")
	ErrLocked            = errors.New("cosmetic is locked")
)

// Purchase buys a gold-priced cosmetic. On error the input record is returned
// unchanged.
func Purchase(rec Record, id CosmeticID) (Record, error) {
	c, ok := LookupCosmetic(id)
	if !ok {
		return rec, fmt.Errorf("%w: %s", ErrUnknownCosmetic, id)
	}
	if rec.HasCosmetic(id) {
		return rec, fmt.Errorf("%w: %s", ErrAlreadyUnlocked, id)
	}
	if !c.Purchasable() {
		return rec, fmt.Errorf("%w: %s needs %d wins", ErrNotForSale, id, c.WinsRequired)
	}
	if rec.Gold < c.Price {
		return rec, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, id, c.Price, rec.Gold)
	}

	next := rec.Clone()
	next.Gold -= c.Price
	next.unlock(id)
	return next, nil
}

// Select equips an unlocked cosmetic.
func Select(rec Record, id CosmeticID) (Record, error) {
	if !rec.HasCosmetic(id) {
		return rec, fmt.Errorf("%w: %s", ErrLocked, id)
	}
	next := rec.Clone()
	next.Selected = id
	return next, nil
}
