package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AccountsFileName is looked up next to the expenses file when no path is given
const AccountsFileName = "accounts.json"

type Account struct {
	ID   AccountID `json:"id"`
	Name string    `json:"name,omitempty"`
}

type accountsFile struct {
	Accounts []Account `json:"accounts"`
}

// AccountOrder ranks account ids by their position in the accounts file
type AccountOrder struct {
	rank map[string]int
}

// DefaultAccountsPath returns accounts.json in the directory of expensesPath
func DefaultAccountsPath(expensesPath string) string {
	return filepath.Join(filepath.Dir(expensesPath), AccountsFileName)
}

// LoadAccountOrder reads an accounts file. A missing file yields an empty order.
func LoadAccountOrder(path string) (AccountOrder, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return AccountOrder{}, nil
	}
	if err != nil {
		return AccountOrder{}, fmt.Errorf("reading accounts file: %w", err)
	}

	var f accountsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return AccountOrder{}, fmt.Errorf("parsing accounts file: %w", err)
	}
	return NewAccountOrder(f.Accounts), nil
}

// NewAccountOrder ranks accounts in the given order, ignoring empty and repeated ids
func NewAccountOrder(accounts []Account) AccountOrder {
	rank := make(map[string]int)
	for _, a := range accounts {
		id := strings.TrimSpace(string(a.ID))
		if id == "" {
			continue
		}
		if _, dup := rank[id]; dup {
			continue
		}
		rank[id] = len(rank)
	}
	return AccountOrder{rank: rank}
}

func (o AccountOrder) Len() int {
	return len(o.rank)
}

// Rank returns the position of an account; unknown accounts rank last
func (o AccountOrder) Rank(id string) int {
	if r, ok := o.rank[id]; ok {
		return r
	}
	return len(o.rank)
}

// Compare orders two account ids by rank
func (o AccountOrder) Compare(a, b string) int {
	return o.Rank(a) - o.Rank(b)
}

// SortExpenses orders expenses by EUR value for the period, largest first,
// breaking ties by account order. Valueless expenses go last. The input is not modified.
func SortExpenses(expenses []Expense, period RepeatUnit, order AccountOrder) []Expense {
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := out[i].ValueEUR(period), out[j].ValueEUR(period)
		switch {
		case vi == nil && vj == nil:
			return order.Compare(out[i].AccountID, out[j].AccountID) < 0
		case vi == nil:
			return false
		case vj == nil:
			return true
		case *vi != *vj:
			return *vi > *vj
		}
		return order.Compare(out[i].AccountID, out[j].AccountID) < 0
	})
	return out
}
