package api_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/satya-datta/beyond-dreams/internal/api"
	"github.com/satya-datta/beyond-dreams/internal/domain"
	"github.com/satya-datta/beyond-dreams/internal/referral"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	r := gin.New()
	referrals := referral.NewService(db)
	uploadDir := t.TempDir()
	r.POST("/create-user", api.CreateUserHandler(db, referrals, uploadDir))
	r.PUT("/update_user/:user_id", api.UpdateUserHandler(db, referrals, uploadDir))
	r.GET("/getuser_details/:user_id", api.GetUserDetailsHandler(db, nil))
	r.GET("/getwallet/:user_id", api.GetWalletHandler(db, nil))
	r.GET("/wallet_transactions/:user_id", api.GetWalletTransactionsHandler(db))
	return r
}

func signupForm(email, phone, packageID, referrerCode string) url.Values {
	form := url.Values{}
	form.Set("name", "Asha")
	form.Set("package_id", packageID)
	form.Set("email", email)
	form.Set("phone", phone)
	form.Set("gender", "female")
	form.Set("Address", "12 Lake Road")
	form.Set("Pincode", "560001")
	if referrerCode != "" {
		form.Set("referrercode", referrerCode)
	}
	return form
}

func TestCreateUser_MissingFields(t *testing.T) {
	db := newTestDB(t)
	r := newUserRouter(t, db)

	form := signupForm("asha@example.com", "9876543210", "1", "")
	form.Del("email")
	w := performForm(r, http.MethodPost, "/create-user", form)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was persisted
	var count int64
	require.NoError(t, db.Model(&domain.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateUser_WithoutReferralCode(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Starter", Price: 100}).Error)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "User and wallet created successfully", body["message"])
	require.NotZero(t, body["userId"])
	require.NotZero(t, body["walletId"])

	// Wallet starts at exactly zero with no transactions
	var wallet domain.Wallet
	require.NoError(t, db.Where("user_id = ?", uint(body["userId"].(float64))).First(&wallet).Error)
	require.Zero(t, wallet.Balance)
	var txCount int64
	require.NoError(t, db.Model(&domain.WalletTransaction{}).Count(&txCount).Error)
	require.Zero(t, txCount)

	// A shareable referral code was generated
	var user domain.User
	require.NoError(t, db.First(&user, wallet.UserID).Error)
	require.NotEmpty(t, user.ReferralCode)
}

func TestCreateUser_WithValidReferralCode(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Pro", Price: 100}).Error)
	require.NoError(t, db.Create(&domain.Package{ID: 2, Name: "Starter", Price: 50}).Error)
	referrer := domain.User{Name: "Ravi", PackageID: 2, Email: "ravi@example.com", Phone: "9000000001", Gender: "male", ReferralCode: "REF123"}
	require.NoError(t, db.Create(&referrer).Error)
	require.NoError(t, db.Create(&domain.Wallet{UserID: referrer.ID}).Error)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", "REF123"))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "User and wallet created successfully with referral bonus", body["message"])

	// min(floor(100*0.8), floor(50*0.8)) = min(80, 40) = 40
	var wallet domain.Wallet
	require.NoError(t, db.Where("user_id = ?", referrer.ID).First(&wallet).Error)
	require.Equal(t, float64(40), wallet.Balance)

	var txs []domain.WalletTransaction
	require.NoError(t, db.Where("user_id = ?", referrer.ID).Find(&txs).Error)
	require.Len(t, txs, 1)
	require.Equal(t, "credit", txs[0].Type)
	require.Equal(t, float64(40), txs[0].Amount)
}

func TestCreateUser_UnknownReferralCode(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Pro", Price: 100}).Error)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", "NOSUCH"))
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "User and wallet created successfully (no referrer found)", body["message"])

	// No wallet was credited anywhere
	var txCount int64
	require.NoError(t, db.Model(&domain.WalletTransaction{}).Count(&txCount).Error)
	require.Zero(t, txCount)
}

func TestUpdateUser_ReferralIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Pro", Price: 100}).Error)
	require.NoError(t, db.Create(&domain.Package{ID: 2, Name: "Starter", Price: 50}).Error)
	referrer := domain.User{Name: "Ravi", PackageID: 2, Email: "ravi@example.com", Phone: "9000000001", Gender: "male", ReferralCode: "REF123"}
	require.NoError(t, db.Create(&referrer).Error)
	require.NoError(t, db.Create(&domain.Wallet{UserID: referrer.ID}).Error)
	r := newUserRouter(t, db)

	// Signup credits the referrer once
	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", "REF123"))
	require.Equal(t, http.StatusCreated, w.Code)
	userID := uint(decodeBody(t, w)["userId"].(float64))

	// An update resubmitting the same code must not double-credit
	form := signupForm("asha@example.com", "9876543210", "1", "REF123")
	w = performForm(r, http.MethodPut, "/update_user/"+itoa(userID), form)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "User details updated successfully (referral bonus already applied)", body["message"])

	var wallet domain.Wallet
	require.NoError(t, db.Where("user_id = ?", referrer.ID).First(&wallet).Error)
	require.Equal(t, float64(40), wallet.Balance)
	var txCount int64
	require.NoError(t, db.Model(&domain.WalletTransaction{}).Count(&txCount).Error)
	require.Equal(t, int64(1), txCount)
}

func TestUpdateUser_NotFound(t *testing.T) {
	db := newTestDB(t)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPut, "/update_user/42", signupForm("asha@example.com", "9876543210", "1", ""))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_RewritesRecord(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Pro", Price: 100}).Error)
	require.NoError(t, db.Create(&domain.Package{ID: 2, Name: "Starter", Price: 50}).Error)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	userID := uint(decodeBody(t, w)["userId"].(float64))

	form := signupForm("asha.new@example.com", "9876543211", "2", "")
	form.Set("name", "Asha N")
	form.Del("Address") // absent optional fields are overwritten to empty
	w = performForm(r, http.MethodPut, "/update_user/"+itoa(userID), form)
	require.Equal(t, http.StatusOK, w.Code)

	var user domain.User
	require.NoError(t, db.First(&user, userID).Error)
	require.Equal(t, "Asha N", user.Name)
	require.Equal(t, "asha.new@example.com", user.Email)
	require.Equal(t, uint(2), user.PackageID)
	require.Empty(t, user.Address)
	require.NotEmpty(t, user.ReferralCode) // generated code survives the rewrite
}

func TestGetUserDetails(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Pro", Price: 100}).Error)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", ""))
	userID := uint(decodeBody(t, w)["userId"].(float64))

	w = performJSON(r, http.MethodGet, "/getuser_details/"+itoa(userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]any)
	require.Equal(t, "asha@example.com", user["email"])
	require.Equal(t, "12 Lake Road", user["Address"])
	require.NotEmpty(t, user["generatedReferralCode"])

	w = performJSON(r, http.MethodGet, "/getuser_details/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestWalletEndpoints(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Package{ID: 1, Name: "Pro", Price: 100}).Error)
	require.NoError(t, db.Create(&domain.Package{ID: 2, Name: "Starter", Price: 50}).Error)
	referrer := domain.User{Name: "Ravi", PackageID: 2, Email: "ravi@example.com", Phone: "9000000001", Gender: "male", ReferralCode: "REF123"}
	require.NoError(t, db.Create(&referrer).Error)
	require.NoError(t, db.Create(&domain.Wallet{UserID: referrer.ID}).Error)
	r := newUserRouter(t, db)

	w := performForm(r, http.MethodPost, "/create-user", signupForm("asha@example.com", "9876543210", "1", "REF123"))
	require.Equal(t, http.StatusCreated, w.Code)

	// Wallet view reflects the credit
	w = performJSON(r, http.MethodGet, "/getwallet/"+itoa(referrer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	wallet := decodeBody(t, w)["wallet"].(map[string]any)
	require.Equal(t, float64(40), wallet["Balance"])

	// Credit history has exactly one entry
	w = performJSON(r, http.MethodGet, "/wallet_transactions/"+itoa(referrer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(1), body["total"])

	// Unknown user has no wallet
	w = performJSON(r, http.MethodGet, "/getwallet/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
