package index

import (
	"sort"
	"strings"
)

// nameEntry is one case-folded key and the ids registered under it, in
// insertion order.
type nameEntry struct {
	fold string
	ids  []int64
}

// NameIndex is a case-insensitive, deterministically-ordered name→ids
// multimap, modelled on the reference implementation's
// std::map<std::string, std::set<Id>, CaseInsensitiveCompare>. Entries are
// kept sorted by case-folded key so Add and Lookup can binary-search them.
type NameIndex struct {
	entries []nameEntry
}

// Add registers id under name. Empty names are silently dropped by
// callers before reaching here (per spec §4.6: "name keys with empty
// strings are likewise omitted"), but Add itself is a no-op on empty
// input as a defensive backstop.
func (n *NameIndex) Add(name string, id int64) {
	if name == "" {
		return
	}
	fold := strings.ToLower(name)
	i := sort.Search(len(n.entries), func(i int) bool { return n.entries[i].fold >= fold })
	if i < len(n.entries) && n.entries[i].fold == fold {
		n.entries[i].ids = append(n.entries[i].ids, id)
		return
	}
	n.entries = append(n.entries, nameEntry{})
	copy(n.entries[i+1:], n.entries[i:])
	n.entries[i] = nameEntry{fold: fold, ids: []int64{id}}
}

// Lookup returns the ids registered under name, matched case-insensitively.
func (n *NameIndex) Lookup(name string) []int64 {
	fold := strings.ToLower(name)
	i := sort.Search(len(n.entries), func(i int) bool { return n.entries[i].fold >= fold })
	if i < len(n.entries) && n.entries[i].fold == fold {
		return n.entries[i].ids
	}
	return nil
}

// Len returns the number of distinct names registered.
func (n *NameIndex) Len() int { return len(n.entries) }
