// Package export renders CRM data into spreadsheet files for download.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/camaleon/crm-api/internal/core/domain"
)

const contactsSheet = "Contacts"

// WriteContactsXLSX streams an xlsx workbook with one row per contact to w.
func WriteContactsXLSX(w io.Writer, contacts []*domain.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(contactsSheet)
	if err != nil {
		return fmt.Errorf("export contacts: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Email", "Phone", "Position", "Notes", "Portal access", "Created at"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("export contacts: %w", err)
		}
		if err := f.SetCellValue(contactsSheet, cell, h); err != nil {
			return fmt.Errorf("export contacts: %w", err)
		}
	}

	for row, c := range contacts {
		access := "no"
		if c.HasPortalAccess() {
			access = "yes"
		}
		values := []any{c.Name, c.Email, c.Phone, c.Position, c.Notes, access, c.CreatedAt.Format("2006-01-02")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("export contacts: %w", err)
			}
			if err := f.SetCellValue(contactsSheet, cell, v); err != nil {
				return fmt.Errorf("export contacts: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export contacts: %w", err)
	}
	return nil
}
