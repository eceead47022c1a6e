package models

import (
	"testing"
	"time"

	"github.com/kevin07696/unit-client/pkg/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCents_UnmarshalJSON(t *testing.T) {
	var c Cents
	require.NoError(t, c.UnmarshalJSON([]byte(`"12345"`)))
	assert.Equal(t, int64(12345), c.Int64())
	assert.Equal(t, "123.45", c.Dollars().String())
	assert.Equal(t, "12345", c.String())

	assert.Error(t, c.UnmarshalJSON([]byte(`12345`)))
	assert.Error(t, c.UnmarshalJSON([]byte(`"12.5"`)))
	assert.Error(t, c.UnmarshalJSON([]byte(`"abc"`)))

	var unset Cents
	assert.True(t, unset.Decimal().IsZero())
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(1990, time.May, 17)
	data, err := encoding.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-05-17"`, string(data))

	var parsed Date
	require.NoError(t, encoding.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed.Time))

	var fromTimestamp Date
	require.NoError(t, fromTimestamp.UnmarshalJSON([]byte(`"2024-03-04T18:00:00-05:00"`)))
	assert.Equal(t, "2024-03-04", fromTimestamp.Time.In(time.FixedZone("EST", -5*3600)).Format(dateLayout))

	assert.Error(t, fromTimestamp.UnmarshalJSON([]byte(`"04/03/2024"`)))
}

func TestRelationship(t *testing.T) {
	r := NewRelationship("depositAccount", "555")
	assert.False(t, r.IsZero())
	assert.NoError(t, r.Validate("relationships.account"))

	data, err := encoding.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"type":"depositAccount","id":"555"}}`, string(data))

	assert.True(t, Relationship{}.IsZero())
	assert.Error(t, Relationship{}.Validate("relationships.account"))
	assert.Error(t, NewRelationship("", "1").Validate("relationships.account"))
}

func TestDirection_Validate(t *testing.T) {
	assert.NoError(t, DirectionDebit.Validate("direction"))
	assert.NoError(t, DirectionCredit.Validate("direction"))
	assert.Error(t, Direction("debit").Validate("direction"))
	assert.Error(t, Direction("").Validate("direction"))
}

func TestCounterparty_Validate(t *testing.T) {
	valid := NewCounterparty("812345673", "12345", AccountTypeSavings, "April Oniel")
	assert.NoError(t, valid.Validate("counterparty"))

	tests := []struct {
		name   string
		modify func(*Counterparty)
	}{
		{"short routing", func(c *Counterparty) { c.RoutingNumber = "81234567" }},
		{"alpha routing", func(c *Counterparty) { c.RoutingNumber = "81234567a" }},
		{"non-ascii digit routing", func(c *Counterparty) { c.RoutingNumber = "\u06681234567" }},
		{"non-ascii digit account", func(c *Counterparty) { c.AccountNumber = "\u0661\u0662\u0663" }},
		{"empty account", func(c *Counterparty) { c.AccountNumber = "" }},
		{"bad account type", func(c *Counterparty) { c.AccountType = "Brokerage" }},
		{"missing name", func(c *Counterparty) { c.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			assert.Error(t, c.Validate("counterparty"))
		})
	}
}

func TestHelpers(t *testing.T) {
	address := NewAddress("20 Ingram St", "", "Forest Hills", "NY", "11375", "US")
	assert.NoError(t, address.Validate("address"))
	assert.Error(t, NewAddress("20 Ingram St", "", "Forest Hills", "", "11375", "US").Validate("address"))
	assert.NoError(t, NewAddress("1 Rue", "", "Paris", "", "75001", "FR").Validate("address"))

	name := NewFullName("Peter", "Parker")
	phone := NewPhone("1", "5555555555")
	assert.NoError(t, phone.Validate("phone"))
	assert.Error(t, NewPhone("+1", "555").Validate("phone"))

	user := NewAuthorizedUser(name, "peter@oscorp.com", phone)
	assert.Equal(t, "Parker", user.FullName.Last)

	contact := NewBusinessContact(name, "peter@oscorp.com", phone)
	assert.Equal(t, phone, contact.Phone)

	assert.NoError(t, NewCoordinates(-73.84, 40.72).Validate("coordinates"))
	assert.Error(t, NewCoordinates(200, 0).Validate("coordinates"))

	dob := NewDate(1990, time.May, 17)
	officer := NewOfficer(name, "CEO", "721074426", dob, address, phone, "peter@oscorp.com")
	assert.Equal(t, "CEO", officer.Title)

	owner := NewBeneficialOwner(name, "721074426", dob, address, phone, "peter@oscorp.com", 60)
	assert.NoError(t, owner.Validate("beneficialOwner"))
	owner.Percentage = 120
	assert.Error(t, owner.Validate("beneficialOwner"))
	owner.Percentage = 50
	owner.SSN = ""
	assert.Error(t, owner.Validate("beneficialOwner"))
}

func TestNewIdempotencyKey(t *testing.T) {
	a, b := NewIdempotencyKey(), NewIdempotencyKey()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestListParams_Values(t *testing.T) {
	params := ListParams{
		Limit:      50,
		Offset:     100,
		AccountID:  "555",
		CustomerID: "99",
		Tags:       Tags{"purpose": "rent"},
		Sort:       "-createdAt",
		Include:    []string{"customer", "account"},
	}

	v := params.Values()
	assert.Equal(t, "50", v.Get("page[limit]"))
	assert.Equal(t, "100", v.Get("page[offset]"))
	assert.Equal(t, "555", v.Get("filter[accountId]"))
	assert.Equal(t, "99", v.Get("filter[customerId]"))
	assert.JSONEq(t, `{"purpose":"rent"}`, v.Get("filter[tags]"))
	assert.Equal(t, "-createdAt", v.Get("sort"))
	assert.Equal(t, "customer,account", v.Get("include"))

	assert.Empty(t, ListParams{}.Values())
}

func TestListParams_EventFilters(t *testing.T) {
	since := time.Date(2024, 5, 1, 8, 30, 0, 0, time.FixedZone("EDT", -4*3600))
	params := ListParams{
		Since: since,
		Until: since.Add(time.Hour),
		Types: []string{"payment.sent", "payment.returned"},
	}

	v := params.Values()
	assert.Equal(t, "2024-05-01T12:30:00Z", v.Get("filter[since]"))
	assert.Equal(t, "2024-05-01T13:30:00Z", v.Get("filter[until]"))
	assert.Equal(t, "payment.sent", v.Get("filter[type][0]"))
	assert.Equal(t, "payment.returned", v.Get("filter[type][1]"))
}
