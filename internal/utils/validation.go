package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs validator tags on a request payload struct
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)
	ifscRegex  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// ValidateEmail checks the email address format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks that the phone number is 10-15 digits
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidateIFSC checks the bank branch IFSC code format
func ValidateIFSC(ifsc string) bool {
	return ifscRegex.MatchString(ifsc)
}
