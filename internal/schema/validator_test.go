package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/jsongate/internal/domain"
)

const validRecord = `{"id":1,"email":"a@b.com","name":"Jo","address":{"street":"1 Rd","city":"X","postCode":"12345"}}`

func TestValidate_ValidRecord(t *testing.T) {
	out := NewValidator().Validate([]byte(validRecord))

	require.True(t, out.IsValid(), "errors: %v", out.Errors)
	u := out.User
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "Jo", u.Name)
	assert.False(t, u.HasAge())
	assert.True(t, u.IsActive, "isActive defaults to true")
	assert.NotNil(t, u.Tags)
	assert.Empty(t, u.Tags)
	assert.Equal(t, domain.Address{Street: "1 Rd", City: "X", PostCode: "12345"}, u.Address)
}

func TestValidate_FullRecord(t *testing.T) {
	raw := `{
		"id": 7,
		"email": "jo@example.com",
		"name": "Jo Doe",
		"age": 30,
		"isActive": false,
		"tags": ["developer", "devops"],
		"address": {"street": "123 Main St", "city": "Anytown", "postCode": "00501"},
		"extra": "ignored"
	}`
	out := NewValidator().Validate([]byte(raw))

	require.True(t, out.IsValid(), "errors: %v", out.Errors)
	require.True(t, out.User.HasAge())
	assert.Equal(t, int64(30), *out.User.Age)
	assert.False(t, out.User.IsActive)
	assert.Equal(t, []string{"developer", "devops"}, out.User.Tags)
	assert.Equal(t, "00501", out.User.Address.PostCode)
}

func TestValidate_LegacyKeys(t *testing.T) {
	raw := `{"id":1,"email":"a@b","name":"Jo","is_active":false,
		"address":{"street":"s","city":"c","post_code":"12345"}}`
	out := NewValidator().Validate([]byte(raw))

	require.True(t, out.IsValid(), "errors: %v", out.Errors)
	assert.False(t, out.User.IsActive)
	assert.Equal(t, "12345", out.User.Address.PostCode)
}

func TestValidate_LegacyKeyConflict(t *testing.T) {
	raw := `{"id":1,"email":"a@b","name":"Jo",
		"address":{"street":"s","city":"c","postCode":"12345","post_code":"54321"}}`
	out := NewValidator().Validate([]byte(raw))

	require.False(t, out.IsValid())
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "address.postCode", out.Errors[0].Path)
	assert.Equal(t, domain.CodeConflict, out.Errors[0].Code)
}

// mutate replaces one top-level key of validRecord (or the address sub-key
// when key starts with "address.") with the given raw JSON, or deletes it
// when value is empty.
func mutate(t *testing.T, key, value string) []byte {
	t.Helper()
	fields := map[string]string{
		"id":      `1`,
		"email":   `"a@b.com"`,
		"name":    `"Jo"`,
		"address": "",
	}
	addr := map[string]string{
		"street":   `"1 Rd"`,
		"city":     `"X"`,
		"postCode": `"12345"`,
	}
	order := []string{"id", "email", "name", "age", "isActive", "tags", "address"}
	addrOrder := []string{"street", "city", "postCode"}

	target := fields
	if sub, ok := strings.CutPrefix(key, "address."); ok {
		target, key = addr, sub
	}
	if value == "" {
		delete(target, key)
	} else {
		target[key] = value
	}

	var parts []string
	for _, k := range addrOrder {
		if v, ok := addr[k]; ok {
			parts = append(parts, `"`+k+`":`+v)
		}
	}
	if v, ok := fields["address"]; ok && v == "" {
		fields["address"] = "{" + strings.Join(parts, ",") + "}"
	}

	parts = parts[:0]
	for _, k := range order {
		if v, ok := fields[k]; ok {
			parts = append(parts, `"`+k+`":`+v)
		}
	}
	return []byte("{" + strings.Join(parts, ",") + "}")
}

func TestValidate_SingleViolation(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		wantPath string
		wantCode string
	}{
		{"id missing", "id", "", "id", domain.CodeRequired},
		{"id as string", "id", `"1"`, "id", domain.CodeInvalidType},
		{"id as float", "id", `1.0`, "id", domain.CodeInvalidType},
		{"id exponent", "id", `1e3`, "id", domain.CodeInvalidType},
		{"id overflow", "id", `92233720368547758070`, "id", domain.CodeInvalidType},
		{"id null", "id", `null`, "id", domain.CodeInvalidType},
		{"email without at", "email", `"not-an-email"`, "email", domain.CodeInvalidFormat},
		{"email as number", "email", `5`, "email", domain.CodeInvalidType},
		{"email missing", "email", "", "email", domain.CodeRequired},
		{"name missing", "name", "", "name", domain.CodeRequired},
		{"name as bool", "name", `true`, "name", domain.CodeInvalidType},
		{"age as string", "age", `"30"`, "age", domain.CodeInvalidType},
		{"age as float", "age", `30.5`, "age", domain.CodeInvalidType},
		{"isActive as string", "isActive", `"yes"`, "isActive", domain.CodeInvalidType},
		{"isActive as number", "isActive", `1`, "isActive", domain.CodeInvalidType},
		{"isActive null", "isActive", `null`, "isActive", domain.CodeInvalidType},
		{"tags as string", "tags", `"dev"`, "tags", domain.CodeInvalidType},
		{"tags with number", "tags", `["dev", 3]`, "tags[1]", domain.CodeInvalidType},
		{"address missing", "address", "", "address", domain.CodeRequired},
		{"address null", "address", `null`, "address", domain.CodeRequired},
		{"address as string", "address", `"1 Rd"`, "address", domain.CodeInvalidType},
		{"street missing", "address.street", "", "address.street", domain.CodeRequired},
		{"street empty", "address.street", `""`, "address.street", domain.CodeTooShort},
		{"city as number", "address.city", `12`, "address.city", domain.CodeInvalidType},
		{"postCode letters", "address.postCode", `"ABC12"`, "address.postCode", domain.CodeInvalidFormat},
		{"postCode short", "address.postCode", `"123"`, "address.postCode", domain.CodeLength},
		{"postCode long", "address.postCode", `"123456"`, "address.postCode", domain.CodeLength},
		{"postCode number", "address.postCode", `12345`, "address.postCode", domain.CodeInvalidType},
		{"postCode unicode digits", "address.postCode", `"١٢٣٤٥"`, "address.postCode", domain.CodeInvalidFormat},
		{"postCode missing", "address.postCode", "", "address.postCode", domain.CodeRequired},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := v.Validate(mutate(t, tt.key, tt.value))

			require.False(t, out.IsValid())
			assert.Nil(t, out.User)
			require.Len(t, out.Errors, 1, "errors: %v", out.Errors)
			assert.Equal(t, tt.wantPath, out.Errors[0].Path)
			assert.Equal(t, tt.wantCode, out.Errors[0].Code)
			assert.NotEmpty(t, out.Errors[0].Message)
		})
	}
}

func TestValidate_AgeNullIsUnset(t *testing.T) {
	out := NewValidator().Validate(mutate(t, "age", "null"))

	require.True(t, out.IsValid(), "errors: %v", out.Errors)
	assert.False(t, out.User.HasAge())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	// Mirrors the legacy "invalid user" sample: wrong id type, bad email, bad post code.
	raw := `{"id":"not_an_integer","name":"Jane Doe","email":"invalid-email",
		"address":{"street":"456 Oak Ave","city":"Somewhere","post_code":"ABC12"}}`
	out := NewValidator().Validate([]byte(raw))

	require.False(t, out.IsValid())
	assert.Equal(t, []string{"id", "email", "address.postCode"}, out.Errors.Paths())
}

func TestValidate_DecodeFailures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"empty", "", domain.CodeParseError},
		{"whitespace", "  \n", domain.CodeParseError},
		{"truncated", `{"id":1,`, domain.CodeParseError},
		{"garbage", `hello`, domain.CodeParseError},
		{"trailing value", validRecord + ` {}`, domain.CodeParseError},
		{"leading zero id", `{"id":01,"email":"a@b","name":"A","address":{"street":"s","city":"c","postCode":"12345"}}`, domain.CodeParseError},
		{"leading zero nested", `{"extra":{"n":[1,007]}}`, domain.CodeParseError},
		{"invalid utf8 string", "{\"id\":1,\"email\":\"a@b\",\"name\":\"\xff\xfe\",\"address\":{\"street\":\"s\",\"city\":\"c\",\"postCode\":\"12345\"}}", domain.CodeParseError},
		{"number overflow", `{"id":1E400}`, domain.CodeParseError},
		{"array root", `[1,2]`, domain.CodeInvalidType},
		{"string root", `"user"`, domain.CodeInvalidType},
		{"null root", `null`, domain.CodeInvalidType},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := v.Validate([]byte(tt.input))

			require.False(t, out.IsValid())
			require.Len(t, out.Errors, 1)
			assert.Equal(t, domain.RootPath, out.Errors[0].Path)
			assert.Equal(t, tt.wantCode, out.Errors[0].Code)
		})
	}
}

func TestDecode_NumberGrammar(t *testing.T) {
	for _, lit := range []string{"0", "-0", "10", "-12", "1.5", "0.25", "1e3", "1E-3", "-2.5e+10"} {
		_, err := Decode([]byte(`{"n":` + lit + `}`))
		assert.NoError(t, err, lit)
	}
	for _, lit := range []string{"01", "-01", "00", "007.5"} {
		_, err := Decode([]byte(`{"n":` + lit + `}`))
		assert.ErrorIs(t, err, domain.ErrDecode, lit)
	}
}

func TestValidate_TrailingWhitespaceAccepted(t *testing.T) {
	out := NewValidator().Validate([]byte(validRecord + "\n\n"))
	assert.True(t, out.IsValid(), "errors: %v", out.Errors)
}

func TestDecode_KeepsNumbers(t *testing.T) {
	v, err := Decode([]byte(`{"n": 12345678901234567}`))
	require.NoError(t, err)

	got, errs := Integer("n", v.(map[string]any)["n"])
	require.Empty(t, errs)
	assert.Equal(t, int64(12345678901234567), got)

	_, err = Decode([]byte(`{`))
	require.ErrorIs(t, err, domain.ErrDecode)
}

func TestValidateValue_Pure(t *testing.T) {
	v := NewValidator()
	raw, err := Decode([]byte(validRecord))
	require.NoError(t, err)

	first := v.ValidateValue(raw)
	second := v.ValidateValue(raw)
	assert.Equal(t, first, second)
}
