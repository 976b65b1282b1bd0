// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"strconv"
	"strings"

	"github.com/joelnust/namsa/internal/platform/apperr"
	"github.com/joelnust/namsa/internal/platform/validate"
	"github.com/joelnust/namsa/pkg/pointer"
)

// # Form Field Names

const (
	FieldFirstName   = "firstName"
	FieldSurname     = "surname"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"

	FieldTitleID          = "titleId"
	FieldMaritalStatusID  = "maritalStatusId"
	FieldMemberCategoryID = "memberCategoryId"
	FieldGenderID         = "genderId"
	FieldBankNameID       = "bankNameId"
)

// Draft is the editable projection of a [Record].
//
// Reference objects are flattened to their identifier. The JSON form of a
// Draft is also the body the registry expects on create and update.
type Draft struct {
	FirstName            string `json:"firstName"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`
	IDNumber             *int   `json:"idNumber,omitempty"`
	Pseudonym            string `json:"pseudonym"`
	GroupNameOrStageName string `json:"groupNameORStageName"`
	NoOfDependents       *int   `json:"noOFDependents,omitempty"`
	TypeOfWork           string `json:"typeOfWork"`

	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PoBox      string `json:"poBox"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`

	BirthDate          string `json:"birthDate"`
	PlaceOfBirth       string `json:"placeOfBirth"`
	IDOrPassportNumber string `json:"idOrPassportNumber"`
	Nationality        string `json:"nationality"`
	Occupation         string `json:"occupation"`
	NameOfEmployer     string `json:"nameOfEmployer"`
	AddressOfEmployer  string `json:"addressOfEmployer"`

	NameOfTheBand string `json:"nameOfTheBand"`
	DateFounded   string `json:"dateFounded"`
	NumberOfBand  *int   `json:"numberOfBand,omitempty"`

	AccountHolderName string `json:"accountHolderName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankAccountType   string `json:"bankAccountType"`
	BankBranchName    string `json:"bankBranchName"`
	BankBranchNumber  string `json:"bankBranchNumber"`

	TitleID          *int `json:"titleId,omitempty"`
	MaritalStatusID  *int `json:"maritalStatusId,omitempty"`
	MemberCategoryID *int `json:"memberCategoryId,omitempty"`
	GenderID         *int `json:"genderId,omitempty"`
	BankNameID       *int `json:"bankNameId,omitempty"`
}

// # Field Tables

// textFields maps form names of free-text inputs to their draft slot.
var textFields = map[string]func(*Draft) *string{
	FieldFirstName:         func(d *Draft) *string { return &d.FirstName },
	FieldSurname:           func(d *Draft) *string { return &d.Surname },
	FieldEmail:             func(d *Draft) *string { return &d.Email },
	FieldPhoneNumber:       func(d *Draft) *string { return &d.PhoneNumber },
	"pseudonym":            func(d *Draft) *string { return &d.Pseudonym },
	"groupNameORStageName": func(d *Draft) *string { return &d.GroupNameOrStageName },
	"typeOfWork":           func(d *Draft) *string { return &d.TypeOfWork },
	"line1":                func(d *Draft) *string { return &d.Line1 },
	"line2":                func(d *Draft) *string { return &d.Line2 },
	"city":                 func(d *Draft) *string { return &d.City },
	"region":               func(d *Draft) *string { return &d.Region },
	"poBox":                func(d *Draft) *string { return &d.PoBox },
	"postalCode":           func(d *Draft) *string { return &d.PostalCode },
	"country":              func(d *Draft) *string { return &d.Country },
	"birthDate":            func(d *Draft) *string { return &d.BirthDate },
	"placeOfBirth":         func(d *Draft) *string { return &d.PlaceOfBirth },
	"idOrPassportNumber":   func(d *Draft) *string { return &d.IDOrPassportNumber },
	"nationality":          func(d *Draft) *string { return &d.Nationality },
	"occupation":           func(d *Draft) *string { return &d.Occupation },
	"nameOfEmployer":       func(d *Draft) *string { return &d.NameOfEmployer },
	"addressOfEmployer":    func(d *Draft) *string { return &d.AddressOfEmployer },
	"nameOfTheBand":        func(d *Draft) *string { return &d.NameOfTheBand },
	"dateFounded":          func(d *Draft) *string { return &d.DateFounded },
	"accountHolderName":    func(d *Draft) *string { return &d.AccountHolderName },
	"bankAccountNumber":    func(d *Draft) *string { return &d.BankAccountNumber },
	"bankAccountType":      func(d *Draft) *string { return &d.BankAccountType },
	"bankBranchName":       func(d *Draft) *string { return &d.BankBranchName },
	"bankBranchNumber":     func(d *Draft) *string { return &d.BankBranchNumber },
}

// numberFields maps numeric inputs; an empty input clears the value.
var numberFields = map[string]func(*Draft) **int{
	"idNumber":       func(d *Draft) **int { return &d.IDNumber },
	"noOFDependents": func(d *Draft) **int { return &d.NoOfDependents },
	"numberOfBand":   func(d *Draft) **int { return &d.NumberOfBand },
}

// referenceFields maps select inputs bound to a lookup table.
var referenceFields = map[string]func(*Draft) **int{
	FieldTitleID:          func(d *Draft) **int { return &d.TitleID },
	FieldMaritalStatusID:  func(d *Draft) **int { return &d.MaritalStatusID },
	FieldMemberCategoryID: func(d *Draft) **int { return &d.MemberCategoryID },
	FieldGenderID:         func(d *Draft) **int { return &d.GenderID },
	FieldBankNameID:       func(d *Draft) **int { return &d.BankNameID },
}

// # Construction

// DraftFromRecord projects a record into its editable form.
//
// Every text field is copied as is; a missing registry value is already the
// empty string. Reference objects contribute only their identifier.
func DraftFromRecord(record *Record) Draft {
	if record == nil {
		return Draft{}
	}

	return Draft{
		FirstName:            record.FirstName,
		Surname:              record.Surname,
		Email:                record.Email,
		PhoneNumber:          record.PhoneNumber,
		IDNumber:             pointer.Copy(record.IDNumber),
		Pseudonym:            record.Pseudonym,
		GroupNameOrStageName: record.GroupNameOrStageName,
		NoOfDependents:       pointer.Copy(record.NoOfDependents),
		TypeOfWork:           record.TypeOfWork,
		Line1:                record.Line1,
		Line2:                record.Line2,
		City:                 record.City,
		Region:               record.Region,
		PoBox:                record.PoBox,
		PostalCode:           record.PostalCode,
		Country:              record.Country,
		BirthDate:            record.BirthDate,
		PlaceOfBirth:         record.PlaceOfBirth,
		IDOrPassportNumber:   record.IDOrPassportNumber,
		Nationality:          record.Nationality,
		Occupation:           record.Occupation,
		NameOfEmployer:       record.NameOfEmployer,
		AddressOfEmployer:    record.AddressOfEmployer,
		NameOfTheBand:        record.NameOfTheBand,
		DateFounded:          record.DateFounded,
		NumberOfBand:         pointer.Copy(record.NumberOfBand),
		AccountHolderName:    record.AccountHolderName,
		BankAccountNumber:    record.BankAccountNumber,
		BankAccountType:      record.BankAccountType,
		BankBranchName:       record.BankBranchName,
		BankBranchNumber:     record.BankBranchNumber,
		TitleID:              idOf(record.Title),
		MaritalStatusID:      idOf(record.MaritalStatus),
		MemberCategoryID:     idOf(record.MemberCategory),
		GenderID:             idOf(record.Gender),
		BankNameID:           idOf(record.BankName),
	}
}

// # Change Handlers

// SetText stores the raw input value of a text or numeric field.
//
// Numeric inputs are parsed; an empty value clears them. Unknown field names
// and reference fields are rejected so a typo cannot silently drop input.
func (d *Draft) SetText(name, value string) error {
	if slot, ok := textFields[name]; ok {
		*slot(d) = value
		return nil
	}

	if slot, ok := numberFields[name]; ok {
		number, err := parseOptionalInt(value)
		if err != nil {
			return validate.Field(name, "Must be a whole number")
		}
		*slot(d) = number
		return nil
	}

	return validate.Field(name, "Unknown field")
}

// SetReference stores the selected lookup identifier, or clears the field
// when the selection is empty.
func (d *Draft) SetReference(name, value string) error {
	slot, ok := referenceFields[name]
	if !ok {
		return validate.Field(name, "Unknown field")
	}

	id, err := parseOptionalInt(value)
	if err != nil {
		return validate.Field(name, "Must be a valid selection")
	}

	*slot(d) = id
	return nil
}

// IsReferenceField reports whether name is bound to a lookup table.
func IsReferenceField(name string) bool {
	_, ok := referenceFields[name]
	return ok
}

// Missing lists the required fields that are still empty. The page marks
// them; saving is not blocked here, the registry has the final word.
func (d *Draft) Missing() []apperr.FieldError {
	validator := &validate.Validator{}
	validator.
		Required(FieldFirstName, d.FirstName).
		Required(FieldSurname, d.Surname).
		Required(FieldEmail, d.Email).
		Required(FieldPhoneNumber, d.PhoneNumber)
	return validator.Errors()
}

// Clone returns a deep copy; drafts are handed across goroutines by value.
func (d Draft) Clone() Draft {
	clone := d
	clone.IDNumber = pointer.Copy(d.IDNumber)
	clone.NoOfDependents = pointer.Copy(d.NoOfDependents)
	clone.NumberOfBand = pointer.Copy(d.NumberOfBand)
	clone.TitleID = pointer.Copy(d.TitleID)
	clone.MaritalStatusID = pointer.Copy(d.MaritalStatusID)
	clone.MemberCategoryID = pointer.Copy(d.MemberCategoryID)
	clone.GenderID = pointer.Copy(d.GenderID)
	clone.BankNameID = pointer.Copy(d.BankNameID)
	return clone
}

// parseOptionalInt parses a form value; "" means unset.
func parseOptionalInt(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	number, err := strconv.Atoi(value)
	if err != nil {
		return nil, err
	}
	return pointer.To(number), nil
}
