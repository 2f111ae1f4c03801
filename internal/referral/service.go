package referral

import (
	"errors"
	"fmt"

	"github.com/satya-datta/beyond-dreams/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Outcome tags the result of a referral bonus application
type Outcome int

const (
	Applied        Outcome = iota // Commission credited to the referrer
	NoReferrer                    // Code resolved to no user; a successful no-op
	AlreadyApplied                // A bonus for this referred user already exists
)

// Result of applying a referral bonus
type Result struct {
	Outcome    Outcome // What happened
	Amount     float64 // Commission credited (zero unless Applied)
	ReferrerID uint    // Resolved referrer (zero when NoReferrer)
}

// Service applies referral bonuses against the store
type Service struct {
	db *gorm.DB
}

// NewService creates a referral service over the given DB handle
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Apply resolves a referral code to its owner, computes the commission from
// the two package prices and credits the referrer's wallet. The idempotency
// marker, the balance increment and the audit row commit as a single
// transaction; any stage failure aborts all three. Callers should skip the
// call entirely when the code is empty.
func (s *Service) Apply(newUserPackageID uint, referralCode string, referredUserID uint) (Result, error) {
	var referrer domain.User
	// Resolve the referral code to a referrer id + package id
	err := s.db.Select("id", "package_id").Where("referral_code = ?", referralCode).First(&referrer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Unknown code is not an error, just no bonus to apply
		return Result{Outcome: NoReferrer}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("resolving referral code: %w", err)
	}

	// Commission is the lesser of the two package commissions
	amount, err := ComputeCommission(s.db, newUserPackageID, referrer.PackageID)
	if err != nil {
		return Result{}, fmt.Errorf("calculating referral commission: %w", err)
	}

	// Atomic credit: marker insert, balance increment, transaction log
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Marker goes first so a duplicate referred user aborts before money moves
		marker := domain.Referral{ReferrerID: referrer.ID, ReferredUserID: referredUserID, Amount: amount}
		if err := tx.Create(&marker).Error; err != nil {
			return err // Return error to rollback
		}
		var wallet domain.Wallet
		// Look up the referrer's wallet id for the audit row
		if err := tx.Where("user_id = ?", referrer.ID).First(&wallet).Error; err != nil {
			return fmt.Errorf("fetching referrer wallet: %w", err)
		}
		// Increment referrer balance
		if err := tx.Model(&wallet).Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
			return fmt.Errorf("updating referrer wallet: %w", err)
		}
		// Append the credit to the transaction log
		t := domain.WalletTransaction{
			UserID:      referrer.ID,
			WalletID:    wallet.ID,
			Amount:      amount,
			Type:        "credit",
			Description: fmt.Sprintf("Referral commission for user %d", referredUserID),
		}
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("recording wallet transaction: %w", err)
		}
		return nil // Commit transaction
	})
	// A duplicate marker means the bonus was already credited for this user
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Result{Outcome: AlreadyApplied, ReferrerID: referrer.ID}, nil
	}
	if err != nil {
		return Result{}, err
	}
	// Log the credited commission
	logrus.WithFields(logrus.Fields{
		"referrer_id":      referrer.ID,
		"referred_user_id": referredUserID,
		"amount":           amount,
		"type":             "credit",
	}).Info("Referral commission credited")
	return Result{Outcome: Applied, Amount: amount, ReferrerID: referrer.ID}, nil
}
