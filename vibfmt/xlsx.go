// Copyright 2026 The PPVLaw Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vibfmt

import (
	"github.com/xuri/excelize/v2"
)

// A Sheet pairs a worksheet name with the table to put on it.
type Sheet struct {
	Name  string
	Table *Table
}

// WriteXLSX writes the given sheets to an xlsx workbook at path.
func WriteXLSX(path string, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			f.SetSheetName("Sheet1", sheet.Name)
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return err
			}
		}
		sw, err := f.NewStreamWriter(sheet.Name)
		if err != nil {
			return err
		}
		header := make([]interface{}, len(sheet.Table.Cols))
		for j, c := range sheet.Table.Cols {
			header[j] = c.Name
		}
		if err := sw.SetRow("A1", header); err != nil {
			return err
		}
		for row := 0; row < sheet.Table.Rows(); row++ {
			cell, _ := excelize.CoordinatesToCellName(1, row+2)
			record := make([]interface{}, len(sheet.Table.Cols))
			for j, c := range sheet.Table.Cols {
				record[j] = c.Values[row]
			}
			if err := sw.SetRow(cell, record); err != nil {
				return err
			}
		}
		if err := sw.Flush(); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
