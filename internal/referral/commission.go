package referral

import (
	"errors"
	"math"

	"github.com/satya-datta/beyond-dreams/internal/domain"

	"gorm.io/gorm"
)

// ErrPackageNotFound is returned when either package id of a commission
// calculation has no matching row
var ErrPackageNotFound = errors.New("one or both packages not found")

// commissionFor is the per-package commission: price minus 20%, truncated
// down to a whole amount (floor, not round)
func commissionFor(price float64) float64 {
	return math.Floor(price - price*0.2)
}

// ComputeCommission fetches both package prices in one batched lookup and
// returns the lesser of the two commissions. The two ids may be equal, in
// which case both commissions are identical.
func ComputeCommission(db *gorm.DB, userPackageID, referrerPackageID uint) (float64, error) {
	var pkgs []domain.Package
	// Batched price lookup for both packages
	if err := db.Where("id IN (?, ?)", userPackageID, referrerPackageID).Find(&pkgs).Error; err != nil {
		return 0, err
	}
	var userCommission, referrerCommission *float64
	// Map each resolved package back to the id it was fetched for
	for _, pkg := range pkgs {
		commission := commissionFor(pkg.Price)
		if pkg.ID == userPackageID {
			c := commission
			userCommission = &c
		}
		if pkg.ID == referrerPackageID {
			c := commission
			referrerCommission = &c
		}
	}
	// Either id missing from the result set means a dangling package reference
	if userCommission == nil || referrerCommission == nil {
		return 0, ErrPackageNotFound
	}
	return math.Min(*userCommission, *referrerCommission), nil
}
