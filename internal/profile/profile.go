// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile defines the artist membership profile as the portal sees it.

It holds three shapes of the same data:

  - [Record]: the canonical, registry-held profile (read only for the portal).
  - [Draft]: the flat, form-editable projection the artist works on.
  - [Bundle]: the record plus its four supporting documents.

Mapping between registry wire formats and these types lives in the backend
client; this package never sees JSON from the registry.
*/
package profile

// # Review Status

// Status is the registry's review decision for a profile.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Normalize returns s, or [StatusPending] when s is unset or unknown.
func (s Status) Normalize() Status {
	switch s {
	case StatusApproved, StatusRejected:
		return s
	default:
		return StatusPending
	}
}

// # Reference Objects

// Reference is a resolved lookup value embedded in a [Record]
// (e.g. the artist's title or bank).
type Reference struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// idOf returns the identifier of ref, or nil when the reference is absent.
func idOf(ref *Reference) *int {
	if ref == nil {
		return nil
	}
	id := ref.ID
	return &id
}

// # Canonical Record

// Record is the registry's profile for one artist.
//
// ArtistID and IPINumber are assigned by the registry after approval and stay
// empty until then.
type Record struct {
	ID int `json:"id"`

	// Identity
	FirstName            string `json:"firstName"`
	Surname              string `json:"surname"`
	Pseudonym            string `json:"pseudonym"`
	GroupNameOrStageName string `json:"groupNameORStageName"`
	IDNumber             *int   `json:"idNumber,omitempty"`
	IDOrPassportNumber   string `json:"idOrPassportNumber"`

	// Contact
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`

	// Demographics and employment
	BirthDate         string `json:"birthDate"`
	PlaceOfBirth      string `json:"placeOfBirth"`
	Nationality       string `json:"nationality"`
	Occupation        string `json:"occupation"`
	TypeOfWork        string `json:"typeOfWork"`
	NoOfDependents    *int   `json:"noOFDependents,omitempty"`
	NameOfEmployer    string `json:"nameOfEmployer"`
	AddressOfEmployer string `json:"addressOfEmployer"`

	// Address
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PoBox      string `json:"poBox"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`

	// Banking
	AccountHolderName string `json:"accountHolderName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	BankAccountType   string `json:"bankAccountType"`
	BankBranchName    string `json:"bankBranchName"`
	BankBranchNumber  string `json:"bankBranchNumber"`

	// Band
	NameOfTheBand string `json:"nameOfTheBand"`
	DateFounded   string `json:"dateFounded"`
	NumberOfBand  *int   `json:"numberOfBand,omitempty"`

	// Reference objects
	Title          *Reference `json:"title,omitempty"`
	MaritalStatus  *Reference `json:"maritalStatus,omitempty"`
	MemberCategory *Reference `json:"memberCategory,omitempty"`
	Gender         *Reference `json:"gender,omitempty"`
	BankName       *Reference `json:"bankName,omitempty"`

	// Review
	Status    Status `json:"status"`
	Notes     string `json:"notes,omitempty"`
	ArtistID  string `json:"artistId,omitempty"`
	IPINumber string `json:"ipiNumber,omitempty"`
}
