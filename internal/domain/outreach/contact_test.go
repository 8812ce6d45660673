package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSheetMissingColumns(t *testing.T) {
	s := &Sheet{Columns: []string{ColumnFirstName, ColumnEmail}}

	assert.True(t, s.HasColumn(ColumnEmail))
	assert.Equal(t, []string{ColumnLastName, ColumnEmailStatus}, s.MissingColumns(ExpectedColumns))
	assert.Equal(t, []string{ColumnLastName}, s.MissingColumns(RequiredColumns))
}

func TestSheetPreview(t *testing.T) {
	s := &Sheet{Contacts: []Contact{{}, {}}}

	assert.Len(t, s.Preview(3), 2)
	assert.Len(t, s.Preview(1), 1)
}

func TestContactAccessors(t *testing.T) {
	c := Contact{
		ColumnFirstName:   "Ada",
		ColumnLastName:    "Lovelace",
		ColumnEmail:       "  ada@acme.test ",
		ColumnEmailStatus: " Verified ",
	}

	assert.Equal(t, "Ada Lovelace", c.FullName())
	assert.Equal(t, "ada@acme.test", c.Email())
	assert.Equal(t, "Verified", c.Status())
	assert.Empty(t, c.Company())
}

func TestMessageRecipients(t *testing.T) {
	m := Message{To: "a@x.test", Cc: []string{"b@x.test", "c@x.test"}}
	assert.Equal(t, []string{"a@x.test", "b@x.test", "c@x.test"}, m.Recipients())
}
