package schema

import "github.com/bft-labs/jsongate/internal/domain"

// AddressSchema describes domain.Address.
var AddressSchema = Object{Fields: []Field{
	{Name: "street", Required: true, Check: NonEmptyString},
	{Name: "city", Required: true, Check: NonEmptyString},
	{Name: "postCode", Aliases: []string{"post_code"}, Required: true, Check: Digits(5)},
}}

// UserSchema describes domain.User. Field order is the order checks run in.
var UserSchema = Object{Fields: []Field{
	{Name: "id", Required: true, Check: Integer},
	{Name: "email", Required: true, Check: Email},
	{Name: "name", Required: true, Check: String},
	{Name: "age", NullAsAbsent: true, Check: Integer},
	{Name: "isActive", Aliases: []string{"is_active"}, Default: func() any { return true }, Check: Boolean},
	{Name: "tags", Default: func() any { return []string{} }, Check: StringArray},
	{Name: "address", Required: true, NullAsAbsent: true, Check: Nested(AddressSchema)},
}}

// buildUser assembles a User from values that already passed UserSchema.
func buildUser(values map[string]any) domain.User {
	u := domain.User{
		ID:       values["id"].(int64),
		Email:    values["email"].(string),
		Name:     values["name"].(string),
		IsActive: values["isActive"].(bool),
		Tags:     values["tags"].([]string),
	}
	if age, ok := values["age"].(int64); ok {
		u.Age = &age
	}
	addr := values["address"].(map[string]any)
	u.Address = domain.Address{
		Street:   addr["street"].(string),
		City:     addr["city"].(string),
		PostCode: addr["postCode"].(string),
	}
	return u
}
