package models

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrPhoneNumberRequired = errors.New("contact phone number is required")

type Contact struct {
	BaseModel
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone" validate:"required" gorm:"not null;unique"`
}

type ContactParams struct {
	Name  string `json:"name"`
	Phone string `json:"phone" validate:"required"`
}

// UpsertContacts creates or updates one contact per param, keyed on phone number.
// An existing phone number gets its name overwritten in place, so re-syncing the
// same number never creates a duplicate. Records come back in input order.
func UpsertContacts(params []ContactParams) ([]Contact, error) {
	// Reject the whole batch up front, so a bad item can't leave partial writes
	for _, param := range params {
		if strings.TrimSpace(param.Phone) == "" {
			return nil, ErrPhoneNumberRequired
		}
	}

	saved := make([]Contact, 0, len(params))
	for _, param := range params {
		contact := Contact{}

		err := db.Where("phone_number = ?", param.Phone).First(&contact).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			contact = Contact{Name: param.Name, PhoneNumber: param.Phone}
			if err := db.Create(&contact).Error; err != nil {
				return nil, errors.Wrap(err, "failed to create contact")
			}
		case err != nil:
			return nil, errors.Wrap(err, "failed to look up contact")
		default:
			contact.Name = param.Name
			if err := db.Save(&contact).Error; err != nil {
				return nil, errors.Wrap(err, "failed to update contact")
			}
		}

		saved = append(saved, contact)
	}

	return saved, nil
}

// AllContacts returns every stored contact, newest first
func AllContacts() ([]Contact, error) {
	contacts := []Contact{}

	err := db.Order("created_at desc").Find(&contacts).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch contacts")
	}

	return contacts, nil
}
