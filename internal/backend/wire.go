// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"github.com/joelnust/namsa/internal/lookup"
	"github.com/joelnust/namsa/internal/profile"
)

// # Registry Wire Format
//
// The registry owns these shapes. They are decoded here and converted into
// the canonical [profile] types immediately; nothing outside this package
// depends on them. Nulls decode into zero values, which is exactly the
// "empty string, never null" rule the form needs.

// wireTitleName is an entry of the title lookup table.
type wireTitleName struct {
	ID        int    `json:"id"`
	TitleName string `json:"titleName"`
}

// wireTitle is the title nested in a member record. The registry has used
// both label keys there.
type wireTitle struct {
	ID        int    `json:"id"`
	TitleName string `json:"titleName"`
	Title     string `json:"title"`
}

func (w *wireTitle) label() string {
	if w.TitleName != "" {
		return w.TitleName
	}
	return w.Title
}

type wireBankName struct {
	ID       int    `json:"id"`
	BankName string `json:"bankName"`
}

type wireMaritalStatus struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type wireMemberCategory struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
}

type wireGender struct {
	ID         int    `json:"id"`
	GenderName string `json:"genderName"`
}

type wireStatus struct {
	ID         int    `json:"id"`
	StatusName string `json:"statusName"`
}

type wireMember struct {
	ID                   int    `json:"id"`
	FirstName            string `json:"firstName"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`
	IDNumber             *int   `json:"idNumber"`
	Pseudonym            string `json:"pseudonym"`
	GroupNameOrStageName string `json:"groupNameORStageName"`
	NoOfDependents       *int   `json:"noOFDependents"`
	TypeOfWork           string `json:"typeOfWork"`
	Line1                string `json:"line1"`
	Line2                string `json:"line2"`
	City                 string `json:"city"`
	Region               string `json:"region"`
	PoBox                string `json:"poBox"`
	PostalCode           string `json:"postalCode"`
	Country              string `json:"country"`
	BirthDate            string `json:"birthDate"`
	PlaceOfBirth         string `json:"placeOfBirth"`
	IDOrPassportNumber   string `json:"idOrPassportNumber"`
	Nationality          string `json:"nationality"`
	Occupation           string `json:"occupation"`
	NameOfEmployer       string `json:"nameOfEmployer"`
	AddressOfEmployer    string `json:"addressOfEmployer"`
	NameOfTheBand        string `json:"nameOfTheBand"`
	DateFounded          string `json:"dateFounded"`
	NumberOfBand         *int   `json:"numberOfBand"`
	AccountHolderName    string `json:"accountHolderName"`
	BankAccountNumber    string `json:"bankAccountNumber"`
	BankAccountType      string `json:"bankAccountType"`
	BankBranchName       string `json:"bankBranchName"`
	BankBranchNumber     string `json:"bankBranchNumber"`

	Title          *wireTitle          `json:"tittle"`
	MaritalStatus  *wireMaritalStatus  `json:"maritalStatus"`
	MemberCategory *wireMemberCategory `json:"memberCategory"`
	Gender         *wireGender         `json:"gender"`
	BankName       *wireBankName       `json:"bankName"`

	Status    *wireStatus `json:"status"`
	Notes     string      `json:"notes"`
	ArtistID  string      `json:"artistId"`
	IPINumber string      `json:"ipiNumber"`
}

type wireImage struct {
	ImageTitle string `json:"imageTitle"`
	ImageURL   string `json:"imageUrl"`
}

type wireFile struct {
	DocumentTitle string `json:"documentTitle"`
	FileURL       string `json:"fileUrl"`
}

type wireDocuments struct {
	MemberDetails          *wireMember `json:"memberDetails"`
	PassportPhoto          *wireImage  `json:"passportPhoto"`
	IDDocument             *wireFile   `json:"idDocument"`
	BankConfirmationLetter *wireFile   `json:"bankConfirmationLetter"`
	ProofOfPayment         *wireFile   `json:"proofOfPayment"`
}

// wireError is the registry's error body.
type wireError struct {
	Message string `json:"message"`
}

// # Conversions

func (w *wireMember) toRecord() *profile.Record {
	if w == nil {
		return nil
	}

	record := &profile.Record{
		ID:                   w.ID,
		FirstName:            w.FirstName,
		Surname:              w.Surname,
		Pseudonym:            w.Pseudonym,
		GroupNameOrStageName: w.GroupNameOrStageName,
		IDNumber:             w.IDNumber,
		IDOrPassportNumber:   w.IDOrPassportNumber,
		Email:                w.Email,
		PhoneNumber:          w.PhoneNumber,
		BirthDate:            w.BirthDate,
		PlaceOfBirth:         w.PlaceOfBirth,
		Nationality:          w.Nationality,
		Occupation:           w.Occupation,
		TypeOfWork:           w.TypeOfWork,
		NoOfDependents:       w.NoOfDependents,
		NameOfEmployer:       w.NameOfEmployer,
		AddressOfEmployer:    w.AddressOfEmployer,
		Line1:                w.Line1,
		Line2:                w.Line2,
		City:                 w.City,
		Region:               w.Region,
		PoBox:                w.PoBox,
		PostalCode:           w.PostalCode,
		Country:              w.Country,
		AccountHolderName:    w.AccountHolderName,
		BankAccountNumber:    w.BankAccountNumber,
		BankAccountType:      w.BankAccountType,
		BankBranchName:       w.BankBranchName,
		BankBranchNumber:     w.BankBranchNumber,
		NameOfTheBand:        w.NameOfTheBand,
		DateFounded:          w.DateFounded,
		NumberOfBand:         w.NumberOfBand,
		Notes:                w.Notes,
		ArtistID:             w.ArtistID,
		IPINumber:            w.IPINumber,
		Status:               profile.StatusPending,
	}

	if w.Status != nil {
		record.Status = profile.Status(w.Status.StatusName).Normalize()
	}
	if w.Title != nil {
		record.Title = &profile.Reference{ID: w.Title.ID, Label: w.Title.label()}
	}
	if w.MaritalStatus != nil {
		record.MaritalStatus = &profile.Reference{ID: w.MaritalStatus.ID, Label: w.MaritalStatus.Status}
	}
	if w.MemberCategory != nil {
		record.MemberCategory = &profile.Reference{ID: w.MemberCategory.ID, Label: w.MemberCategory.Category}
	}
	if w.Gender != nil {
		record.Gender = &profile.Reference{ID: w.Gender.ID, Label: w.Gender.GenderName}
	}
	if w.BankName != nil {
		record.BankName = &profile.Reference{ID: w.BankName.ID, Label: w.BankName.BankName}
	}

	return record
}

func (w *wireDocuments) toBundle() *profile.Bundle {
	bundle := &profile.Bundle{
		Profile:   w.MemberDetails.toRecord(),
		Documents: make(map[profile.Category]profile.Document),
	}

	if w.PassportPhoto != nil {
		bundle.Documents[profile.CategoryPassportPhoto] = profile.Document{Title: w.PassportPhoto.ImageTitle, URL: w.PassportPhoto.ImageURL}
	}

	files := map[profile.Category]*wireFile{
		profile.CategoryIDDocument:             w.IDDocument,
		profile.CategoryBankConfirmationLetter: w.BankConfirmationLetter,
		profile.CategoryProofOfPayment:         w.ProofOfPayment,
	}
	for category, file := range files {
		if file != nil {
			bundle.Documents[category] = profile.Document{Title: file.DocumentTitle, URL: file.FileURL}
		}
	}

	return bundle
}

func tableOf[T any](items []T, entry func(T) lookup.Entry) lookup.Table {
	table := make(lookup.Table, 0, len(items))
	for _, item := range items {
		table = append(table, entry(item))
	}
	return table
}
