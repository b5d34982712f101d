package models

// Person represents a contact record.
type Person struct {
	// ID is assigned by storage when the person is inserted.
	ID int64

	FirstName string
	LastName  string

	// Birthday is YYYY-MM-DD or empty.
	Birthday string

	// Email is loosely validated (contains "@") or empty.
	Email string

	Address Address

	// PhoneNumbers is never nil for a person read back from storage.
	PhoneNumbers []PhoneNumber
}

// Address is the postal address of a person.
type Address struct {
	Line1    string
	Line2    string
	City     string
	Prov     string
	Country  string
	Postcode string
}

// PhoneLabel classifies a phone number.
type PhoneLabel string

const (
	PhoneCell  PhoneLabel = "CELL"
	PhoneHome  PhoneLabel = "HOME"
	PhoneWork  PhoneLabel = "WORK"
	PhoneOther PhoneLabel = "OTHER"
)

// PhoneLabels lists the labels in menu order.
func PhoneLabels() []PhoneLabel {
	return []PhoneLabel{PhoneCell, PhoneHome, PhoneWork, PhoneOther}
}

// Valid reports whether l is one of the known labels.
func (l PhoneLabel) Valid() bool {
	switch l {
	case PhoneCell, PhoneHome, PhoneWork, PhoneOther:
		return true
	}
	return false
}

// PhoneNumber is a labeled number owned by a person.
type PhoneNumber struct {
	// Number has the form ###-###-####.
	Number string
	Label  PhoneLabel
}
