package domain

// Address is the postal address embedded in a User.
// PostCode is always exactly five ASCII digits once validated.
type Address struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
}

// User is a fully validated record.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Age      *int64   `json:"age,omitempty"`
	IsActive bool     `json:"isActive"`
	Tags     []string `json:"tags"`
	Address  Address  `json:"address"`
}

// HasAge reports whether the record carried an age.
func (u User) HasAge() bool {
	return u.Age != nil
}
