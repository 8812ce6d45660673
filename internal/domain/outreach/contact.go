package outreach

import "strings"

// Column names recognised in contact spreadsheets.
const (
	ColumnFirstName   = "First Name"
	ColumnLastName    = "Last Name"
	ColumnEmail       = "Email"
	ColumnTitle       = "Title"
	ColumnCompany     = "Company Name"
	ColumnIndustry    = "Industry"
	ColumnKeywords    = "Keywords"
	ColumnWebsite     = "Website"
	ColumnEmailStatus = "Email Status"
)

// RequiredColumns must be present for a run to start.
var RequiredColumns = []string{ColumnFirstName, ColumnLastName, ColumnEmail}

// ExpectedColumns are checked at load time; missing ones are reported as warnings.
var ExpectedColumns = []string{ColumnFirstName, ColumnLastName, ColumnEmail, ColumnEmailStatus}

// Contact is one spreadsheet row keyed by column name.
type Contact map[string]string

func (c Contact) Get(column string) string {
	return c[column]
}

func (c Contact) FirstName() string { return c[ColumnFirstName] }
func (c Contact) LastName() string  { return c[ColumnLastName] }
func (c Contact) Email() string     { return strings.TrimSpace(c[ColumnEmail]) }
func (c Contact) Title() string     { return c[ColumnTitle] }
func (c Contact) Company() string   { return c[ColumnCompany] }
func (c Contact) Industry() string  { return c[ColumnIndustry] }
func (c Contact) Keywords() string  { return c[ColumnKeywords] }
func (c Contact) Website() string   { return c[ColumnWebsite] }
func (c Contact) Status() string    { return strings.TrimSpace(c[ColumnEmailStatus]) }

// FullName joins first and last name the way results are labelled.
func (c Contact) FullName() string {
	return c.FirstName() + " " + c.LastName()
}

// Sheet is a loaded contact spreadsheet.
type Sheet struct {
	Columns  []string
	Contacts []Contact
	Warnings []string
}

func (s *Sheet) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the entries of want that the sheet lacks, in order.
func (s *Sheet) MissingColumns(want []string) []string {
	var missing []string
	for _, name := range want {
		if !s.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Preview returns up to n contacts from the top of the sheet.
func (s *Sheet) Preview(n int) []Contact {
	if n > len(s.Contacts) {
		n = len(s.Contacts)
	}
	return s.Contacts[:n]
}
