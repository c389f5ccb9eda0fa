// Package tabular converts contacts to and from comma separated text.
//
// The format has no quoting: a field can not hold a comma or a newline.
// Column 0 is the phone number, column 1 the display name and every further
// column is a template variable named by its header label.
package tabular

import (
	"strings"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/google/uuid"
)

const (
	separator = ","
	newline   = "\n"

	HeaderPhoneNumber = "Phone Number"
	HeaderName        = "Name"
)

// IDFunc produces a fresh contact id.
type IDFunc func() string

// Decode parses raw into contacts. It never fails: blank lines are skipped,
// missing cells default to empty and empty variable cells are omitted from
// the contact rather than stored as empty strings.
func Decode(raw string) []domain.Contact {
	return DecodeWithIDs(raw, uuid.NewString)
}

func DecodeWithIDs(raw string, newID IDFunc) []domain.Contact {
	lines := strings.Split(raw, newline)
	if len(lines) < 2 {
		return []domain.Contact{}
	}
	headers := splitRow(lines[0])

	contacts := make([]domain.Contact, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := splitRow(line)
		contact := domain.Contact{
			ID:          newID(),
			PhoneNumber: cell(cells, 0),
			Name:        cell(cells, 1),
			Variables:   map[string]string{},
		}
		for i := 2; i < len(headers); i++ {
			if key, value := headers[i], cell(cells, i); key != "" && value != "" {
				if _, dup := contact.Variables[key]; !dup {
					contact.VariableOrder = append(contact.VariableOrder, key)
				}
				contact.Variables[key] = value
			}
		}
		contacts = append(contacts, contact)
	}
	return contacts
}

func splitRow(line string) []string {
	cells := strings.Split(line, separator)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

// VariableKeys returns the union of the contacts' variable keys in first seen
// order. Each contact contributes its keys in import order.
func VariableKeys(contacts []domain.Contact) []string {
	keys := []string{}
	seen := map[string]struct{}{}
	for _, c := range contacts {
		for _, k := range c.VariableKeys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return keys
}

// Encode writes contacts as a header row followed by one row per contact.
// Every row, the header included, is newline terminated.
func Encode(contacts []domain.Contact) string {
	keys := VariableKeys(contacts)

	var b strings.Builder
	header := append([]string{HeaderPhoneNumber, HeaderName}, keys...)
	writeRow(&b, header)

	row := make([]string, len(header))
	for _, c := range contacts {
		row[0], row[1] = c.PhoneNumber, c.Name
		for i, k := range keys {
			row[i+2] = c.Variables[k]
		}
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString(strings.Join(cells, separator))
	b.WriteString(newline)
}
