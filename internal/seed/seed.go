// Package seed holds the default game catalog and decides which entries are
// still missing from the store.
package seed

// Entry is a catalog game.
type Entry struct {
	Name        string
	Description string
}

// Catalog is the fixed set of default games, in insertion order.
var Catalog = []Entry{
	{Name: "Carrom", Description: "Carrom board game"},
	{Name: "Chess", Description: "Strategic chess game"},
	{Name: "Cricket", Description: "Cricket match"},
	{Name: "Presentation", Description: "Presentation competition"},
	{Name: "Hide & Seek", Description: "Hide and seek game"},
	{Name: "Badminton", Description: "Badminton tournament"},
	{Name: "Table Tennis", Description: "Ping pong tournament"},
}

// Plan returns the catalog entries whose names are not in existing,
// preserving catalog order. Names match exactly.
func Plan(existing []string, catalog []Entry) []Entry {
	have := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		have[n] = struct{}{}
	}

	var missing []Entry
	for _, e := range catalog {
		if _, ok := have[e.Name]; ok {
			continue
		}
		have[e.Name] = struct{}{}
		missing = append(missing, e)
	}
	return missing
}
