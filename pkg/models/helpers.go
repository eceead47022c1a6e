package models

// Construction helpers for the shared value types. Each one is pure and only assembles its
// inputs; call Validate on the result where the API imposes rules.

// NewAddress creates a postal address
func NewAddress(street, street2, city, state, postalCode, country string) Address {
	return Address{
		Street:     street,
		Street2:    street2,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
	}
}

// NewFullName creates a person's name
func NewFullName(first, last string) FullName {
	return FullName{First: first, Last: last}
}

// NewPhone creates a phone number
func NewPhone(countryCode, number string) Phone {
	return Phone{CountryCode: countryCode, Number: number}
}

// NewAuthorizedUser creates an authorized user of a business customer
func NewAuthorizedUser(fullName FullName, email string, phone Phone) AuthorizedUser {
	return AuthorizedUser{FullName: fullName, Email: email, Phone: phone}
}

// NewBusinessContact creates the contact person of a business
func NewBusinessContact(fullName FullName, email string, phone Phone) BusinessContact {
	return BusinessContact{FullName: fullName, Email: email, Phone: phone}
}

// NewCoordinates creates a geographic position
func NewCoordinates(longitude, latitude float64) Coordinates {
	return Coordinates{Longitude: longitude, Latitude: latitude}
}

// NewCounterparty creates the external party of an inline ACH payment
func NewCounterparty(routingNumber, accountNumber string, accountType AccountType, name string) Counterparty {
	return Counterparty{
		RoutingNumber: routingNumber,
		AccountNumber: accountNumber,
		AccountType:   accountType,
		Name:          name,
	}
}

// NewOfficer creates the officer of a business identified by SSN.
// Set Passport and Nationality on the result for non-US officers.
func NewOfficer(fullName FullName, title, ssn string, dateOfBirth Date, address Address, phone Phone, email string) Officer {
	return Officer{
		FullName:    fullName,
		Title:       title,
		SSN:         ssn,
		DateOfBirth: dateOfBirth,
		Address:     address,
		Phone:       phone,
		Email:       email,
	}
}

// NewBeneficialOwner creates a beneficial owner identified by SSN, owning percentage of the business
func NewBeneficialOwner(fullName FullName, ssn string, dateOfBirth Date, address Address, phone Phone, email string, percentage int) BeneficialOwner {
	return BeneficialOwner{
		FullName:    fullName,
		SSN:         ssn,
		DateOfBirth: dateOfBirth,
		Address:     address,
		Phone:       phone,
		Email:       email,
		Percentage:  percentage,
	}
}
