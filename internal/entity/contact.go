package entity

import "time"

// Contact is a persisted card. Multi-valued fields are stored flattened with
// ", " to match the legacy storage and CSV boundary; ID and CreatedAt are
// assigned by the repository and never rewritten.
type Contact struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Company     string    `json:"company"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromCard flattens a candidate card into its storable shape.
func FromCard(c Card) Contact {
	return Contact{
		Name:        c.Name,
		Designation: c.Designation,
		Company:     c.Company,
		Phone:       JoinValues(c.Phone),
		Email:       JoinValues(c.Email),
		Website:     JoinValues(c.Website),
		Address:     c.Address,
	}
}

// ToCard expands a stored contact back into list-valued form.
func (c Contact) ToCard() Card {
	return Card{
		Name:        c.Name,
		Designation: c.Designation,
		Company:     c.Company,
		Phone:       SplitValues(c.Phone),
		Email:       SplitValues(c.Email),
		Website:     SplitValues(c.Website),
		Address:     c.Address,
	}
}
