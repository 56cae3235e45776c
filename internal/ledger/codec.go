package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
)

// The persisted shape is [[debtorId, [[creditorId, amount], ...]], ...].

func encode(debts map[string]map[string]float64) ([]byte, error) {
	debtors := make([]string, 0, len(debts))
	for d := range debts {
		debtors = append(debtors, d)
	}
	sort.Strings(debtors)

	out := make([][2]any, 0, len(debtors))
	for _, d := range debtors {
		row := debts[d]
		creditors := make([]string, 0, len(row))
		for c := range row {
			creditors = append(creditors, c)
		}
		sort.Strings(creditors)

		pairs := make([][2]any, 0, len(creditors))
		for _, c := range creditors {
			pairs = append(pairs, [2]any{c, row[c]})
		}
		out = append(out, [2]any{d, pairs})
	}
	return json.Marshal(out)
}

func decode(data []byte) (map[string]map[string]float64, error) {
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	debts := make(map[string]map[string]float64, len(raw))
	for _, entry := range raw {
		var debtor string
		if err := json.Unmarshal(entry[0], &debtor); err != nil {
			return nil, fmt.Errorf("decode debtor: %w", err)
		}
		var pairs [][2]json.RawMessage
		if err := json.Unmarshal(entry[1], &pairs); err != nil {
			return nil, fmt.Errorf("decode creditors of %s: %w", debtor, err)
		}
		for _, p := range pairs {
			var creditor string
			var amount float64
			if err := json.Unmarshal(p[0], &creditor); err != nil {
				return nil, fmt.Errorf("decode creditor of %s: %w", debtor, err)
			}
			if err := json.Unmarshal(p[1], &amount); err != nil {
				return nil, fmt.Errorf("decode amount %s->%s: %w", debtor, creditor, err)
			}
			if amount > epsilon && creditor != debtor {
				offset(debts, debtor, creditor, amount)
			}
		}
	}
	return debts, nil
}
