package fakers

import (
	"strings"

	"github.com/go-faker/faker/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

const DefaultPassword = "password"

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// UserFaker builds a user with the given email and role. A blank email gets
// a random one.
func UserFaker(email string, role models.Role) (*models.User, error) {
	password, err := hashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}
	if email == "" {
		email = strings.ToLower(faker.Email())
	}
	return &models.User{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     email,
		Phone:     faker.Phonenumber(),
		Password:  password,
		Role:      role,
	}, nil
}

func AddressFaker(userID string) *models.UserAddress {
	return &models.UserAddress{
		UserID:    userID,
		Label:     "Home",
		Street:    "221 Market Street",
		City:      "San Francisco",
		State:     "CA",
		ZipCode:   "94105",
		IsDefault: true,
	}
}
