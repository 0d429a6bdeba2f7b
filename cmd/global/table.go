package global

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// TableConfig returns the table style used by all commands
func TableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}

// RenderTable renders the given table using TableConfig
func RenderTable(tab table.Table) (string, error) {
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, TableConfig()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
