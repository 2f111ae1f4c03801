package utils_test

import (
	"strings"
	"testing"

	"github.com/satya-datta/beyond-dreams/internal/utils"

	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	cases := []struct {
		name  string
		check func(string) bool
		input string
		want  bool
	}{
		{"email ok", utils.ValidateEmail, "asha@example.com", true},
		{"email missing domain", utils.ValidateEmail, "asha@", false},
		{"email missing at", utils.ValidateEmail, "asha.example.com", false},
		{"phone ok", utils.ValidatePhone, "9876543210", true},
		{"phone fifteen digits", utils.ValidatePhone, "987654321012345", true},
		{"phone too short", utils.ValidatePhone, "98765", false},
		{"phone letters", utils.ValidatePhone, "98765abcde", false},
		{"ifsc ok", utils.ValidateIFSC, "HDFC0001234", true},
		{"ifsc lowercase", utils.ValidateIFSC, "hdfc0001234", false},
		{"ifsc fifth char not zero", utils.ValidateIFSC, "HDFC1001234", false},
		{"ifsc too short", utils.ValidateIFSC, "HDFC000123", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.check(tc.input))
		})
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT(42, "admin@example.com", "secret")
	require.NoError(t, err)

	claims, err := utils.ParseJWT(token, "secret")
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.AdminID)
	require.Equal(t, "admin@example.com", claims.Email)

	// A different secret must not verify
	_, err = utils.ParseJWT(token, "other-secret")
	require.Error(t, err)

	_, err = utils.ParseJWT("not-a-token", "secret")
	require.Error(t, err)
}

func TestGenerateReferralCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := utils.GenerateReferralCode()
		require.Len(t, code, 10)
		require.True(t, strings.HasPrefix(code, "BD"))
		require.Equal(t, strings.ToUpper(code), code)
		require.False(t, seen[code], "codes should not repeat")
		seen[code] = true
	}
}

func TestUploadFilename(t *testing.T) {
	name := utils.UploadFilename("photo.png")
	require.True(t, strings.HasSuffix(name, ".png"))
	require.NotEqual(t, name, utils.UploadFilename("photo.png"))

	// No extension stays extension-free
	require.NotContains(t, utils.UploadFilename("README"), ".")
}
