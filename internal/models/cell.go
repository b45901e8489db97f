package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Cell is a raw spreadsheet value: text, a number, or empty.
type Cell struct {
	Text     string
	Number   float64
	IsNumber bool
}

func TextCell(s string) Cell {
	return Cell{Text: s}
}

func NumberCell(n float64) Cell {
	return Cell{Number: n, IsNumber: true}
}

func (c Cell) IsEmpty() bool {
	return !c.IsNumber && strings.TrimSpace(c.Text) == ""
}

func (c Cell) String() string {
	if c.IsNumber {
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return c.Text
}

// Int mirrors a lenient integer read: leading sign and digits of the text,
// or the truncated number. Anything else counts as 0.
func (c Cell) Int() int {
	if c.IsNumber {
		return int(c.Number)
	}
	s := strings.TrimSpace(c.Text)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c.IsNumber {
		return json.Marshal(c.Number)
	}
	return json.Marshal(c.Text)
}

func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = Cell{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = TextCell(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = NumberCell(n)
	return nil
}

// ContainerCount is FCL + LCL; split BL lines are each counted.
func ContainerCount(r ShipmentRecord) int {
	return r.FCL.Int() + r.LCL.Int()
}
