package domain

// SettingsDiff lists the preferences that differ between two snapshots.
// It is designed to be serialized to JSON for partial updates on the client.
type SettingsDiff struct {
	Account string           `json:"account"`
	Changed map[string]Value `json:"changed"`
}

// Diff calculates the difference between old and new.
// If old is nil, every preference of new is reported (initial load).
// It returns nil when nothing changed.
func Diff(account string, old *Settings, new Settings) *SettingsDiff {
	diff := &SettingsDiff{
		Account: account,
		Changed: make(map[string]Value),
	}
	for _, p := range Paths() {
		next := Lookup(new, p)
		if old != nil && Lookup(*old, p).Equal(next) {
			continue
		}
		diff.Changed[p.String()] = next
	}
	if len(diff.Changed) == 0 {
		return nil
	}
	return diff
}
