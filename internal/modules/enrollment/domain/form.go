package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "learnify/internal/platform/errors"
)

type PersonalInfo struct {
	FullName       string `json:"fullName" validate:"notblank"`
	Email          string `json:"email" validate:"notblank,email"`
	Phone          string `json:"phone" validate:"notblank"`
	DateOfBirth    string `json:"dateOfBirth" validate:"notblank,datetime=2006-01-02"`
	DocumentNumber string `json:"documentNumber" validate:"notblank"`
}

type Address struct {
	ZipCode      string `json:"zipCode" validate:"notblank"`
	Street       string `json:"street" validate:"notblank"`
	Number       string `json:"number" validate:"notblank"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" validate:"notblank"`
	City         string `json:"city" validate:"notblank"`
	State        string `json:"state" validate:"notblank"`
}

type AdditionalInfo struct {
	EducationLevel   string `json:"educationLevel" validate:"notblank"`
	Occupation       string `json:"occupation" validate:"notblank"`
	ReferralSource   string `json:"hearAboutUs" validate:"notblank"`
	Goals            string `json:"goals"`
	MarketingConsent bool   `json:"marketingConsent"`
}

type Form struct {
	Personal   PersonalInfo
	Address    Address
	Additional AdditionalInfo
}

type Field struct {
	Name     string
	Label    string
	Required bool
}

var stepFields = map[Step][]Field{
	StepPersonal: {
		{Name: "fullName", Label: "Full name", Required: true},
		{Name: "email", Label: "Email", Required: true},
		{Name: "phone", Label: "Phone", Required: true},
		{Name: "dateOfBirth", Label: "Date of birth (YYYY-MM-DD)", Required: true},
		{Name: "documentNumber", Label: "Document number", Required: true},
	},
	StepAddress: {
		{Name: "zipCode", Label: "ZIP code", Required: true},
		{Name: "street", Label: "Street", Required: true},
		{Name: "number", Label: "Number", Required: true},
		{Name: "complement", Label: "Complement"},
		{Name: "neighborhood", Label: "Neighbourhood", Required: true},
		{Name: "city", Label: "City", Required: true},
		{Name: "state", Label: "State", Required: true},
	},
	StepAdditional: {
		{Name: "educationLevel", Label: "Education level", Required: true},
		{Name: "occupation", Label: "Occupation", Required: true},
		{Name: "hearAboutUs", Label: "How did you hear about us", Required: true},
		{Name: "goals", Label: "Goals"},
		{Name: "marketingConsent", Label: "Marketing consent (yes/no)"},
	},
}

// StepFields lists the form fields collected at a step, in display order.
func StepFields(step Step) []Field {
	return stepFields[step]
}

func (f *Form) Set(field, value string) error {
	switch field {
	case "fullName":
		f.Personal.FullName = value
	case "email":
		f.Personal.Email = strings.TrimSpace(value)
	case "phone":
		f.Personal.Phone = value
	case "dateOfBirth":
		f.Personal.DateOfBirth = strings.TrimSpace(value)
	case "documentNumber":
		f.Personal.DocumentNumber = value
	case "zipCode":
		f.Address.ZipCode = value
	case "street":
		f.Address.Street = value
	case "number":
		f.Address.Number = value
	case "complement":
		f.Address.Complement = value
	case "neighborhood":
		f.Address.Neighborhood = value
	case "city":
		f.Address.City = value
	case "state":
		f.Address.State = value
	case "educationLevel":
		f.Additional.EducationLevel = value
	case "occupation":
		f.Additional.Occupation = value
	case "hearAboutUs":
		f.Additional.ReferralSource = value
	case "goals":
		f.Additional.Goals = value
	case "marketingConsent":
		consent, err := parseConsent(value)
		if err != nil {
			return err
		}
		f.Additional.MarketingConsent = consent
	default:
		return fmt.Errorf("unknown field %q: %w", field, apperrors.ErrInvalidInput)
	}
	return nil
}

func (f Form) Get(field string) string {
	switch field {
	case "fullName":
		return f.Personal.FullName
	case "email":
		return f.Personal.Email
	case "phone":
		return f.Personal.Phone
	case "dateOfBirth":
		return f.Personal.DateOfBirth
	case "documentNumber":
		return f.Personal.DocumentNumber
	case "zipCode":
		return f.Address.ZipCode
	case "street":
		return f.Address.Street
	case "number":
		return f.Address.Number
	case "complement":
		return f.Address.Complement
	case "neighborhood":
		return f.Address.Neighborhood
	case "city":
		return f.Address.City
	case "state":
		return f.Address.State
	case "educationLevel":
		return f.Additional.EducationLevel
	case "occupation":
		return f.Additional.Occupation
	case "hearAboutUs":
		return f.Additional.ReferralSource
	case "goals":
		return f.Additional.Goals
	case "marketingConsent":
		if f.Additional.MarketingConsent {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

func parseConsent(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "no", "n", "false", "0":
		return false, nil
	case "yes", "y", "true", "1":
		return true, nil
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("marketing consent %q: %w", value, apperrors.ErrInvalidInput)
}
