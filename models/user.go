package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password,omitempty" json:"-"`
	Role            Role               `bson:"role" json:"role"`
	ApartmentNumber string             `bson:"apartmentNumber,omitempty" json:"apartmentNumber,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Normalize trims the profile fields, lowercases the email and enforces the
// apartment rule: required for residents, dropped for admins.
func (u *User) Normalize() error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.ApartmentNumber = strings.TrimSpace(u.ApartmentNumber)
	if u.Role == "" {
		u.Role = RoleResident
	}
	if !u.Role.Valid() {
		return ErrValidation("Role must be either resident or admin")
	}
	if u.Name == "" {
		return ErrValidation("Name is required")
	}
	switch u.Role {
	case RoleResident:
		if u.ApartmentNumber == "" {
			return ErrValidation("Apartment number is required for residents.")
		}
	case RoleAdmin:
		u.ApartmentNumber = ""
	}
	return nil
}

func (u *User) HashPassword(cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}
