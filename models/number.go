package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LooseNumber holds a numeric form value exactly as it was entered.
// It decodes from a JSON number or string and always encodes as a string,
// so "" and half-typed values survive a save/load cycle.
type LooseNumber string

func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = LooseNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("number or string expected, got %s", data)
	}
	*n = LooseNumber(num)
	return nil
}

func (n LooseNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// Float parses the value, reading anything unparseable as 0.
func (n LooseNumber) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil {
		return 0
	}
	return f
}

// Decimal parses the value, reading anything unparseable as zero.
func (n LooseNumber) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(string(n)))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NumberFromDecimal formats d without trailing zeros.
func NumberFromDecimal(d decimal.Decimal) LooseNumber {
	return LooseNumber(d.String())
}
