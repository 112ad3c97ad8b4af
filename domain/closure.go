package domain

import (
	"encoding/json"
	"fmt"
)

// LoanClosure records whether a loan has been paid off and in which month.
// The zero value is an open loan. A closed value never reopens.
type LoanClosure struct {
	month int
}

// ClosedIn returns a closure for a loan paid off in the given month.
func ClosedIn(month int) LoanClosure {
	return LoanClosure{month: month}
}

func (c LoanClosure) Closed() bool {
	return c.month > 0
}

// Month returns the closing month, or false while the loan is open.
func (c LoanClosure) Month() (int, bool) {
	return c.month, c.month > 0
}

// Close transitions an open loan to closed. Closing an already closed
// loan keeps the original month.
func (c LoanClosure) Close(month int) LoanClosure {
	if c.Closed() {
		return c
	}
	return LoanClosure{month: month}
}

func (c LoanClosure) String() string {
	if !c.Closed() {
		return "open"
	}
	return fmt.Sprintf("closed in month %d", c.month)
}

func (c LoanClosure) MarshalJSON() ([]byte, error) {
	if !c.Closed() {
		return []byte("null"), nil
	}
	return json.Marshal(c.month)
}

func (c *LoanClosure) UnmarshalJSON(data []byte) error {
	var month *int
	if err := json.Unmarshal(data, &month); err != nil {
		return err
	}
	if month == nil || *month <= 0 {
		*c = LoanClosure{}
		return nil
	}
	*c = LoanClosure{month: *month}
	return nil
}
