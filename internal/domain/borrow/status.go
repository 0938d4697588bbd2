package borrow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status mirrors the vault's record status code. StatusMatured is never
// reported by the ledger; it is derived locally from an active record whose
// maturity has passed.
type Status uint8

const (
	StatusNone Status = iota
	StatusActive
	StatusEnd
	StatusOverdue
	StatusLiquidation
	StatusMatured
)

var statusNames = map[Status]string{
	StatusNone:        "none",
	StatusActive:      "active",
	StatusEnd:         "end",
	StatusOverdue:     "overdue",
	StatusLiquidation: "liquidation",
	StatusMatured:     "matured",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// Terminal reports whether no further client-observed transition can happen.
func (s Status) Terminal() bool {
	switch s {
	case StatusEnd, StatusOverdue, StatusLiquidation:
		return true
	}
	return false
}

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for k, v := range statusNames {
		if v == name {
			*s = k
			return nil
		}
	}
	// codes the ledger added after this build, as String renders them
	if code, ok := strings.CutPrefix(name, "unknown("); ok {
		if code, ok = strings.CutSuffix(code, ")"); ok {
			if n, err := strconv.ParseUint(code, 10, 8); err == nil {
				*s = Status(n)
				return nil
			}
		}
	}
	return fmt.Errorf("unknown status %q", name)
}
