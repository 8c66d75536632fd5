package skill

// SynonymRow is one synonym table entry as read from the store.
type SynonymRow struct {
	Token     string
	ExpandsTo string
	Category  string
}

// VariantMap maps normalized tokens to canonical tokens. It is immutable once
// built; every canonical token maps to itself.
type VariantMap struct {
	canonical  map[string]string
	keys       []string
	categories map[string]string
}

// EmptyVariantMap returns a map with no entries.
func EmptyVariantMap() *VariantMap {
	return &VariantMap{canonical: map[string]string{}, categories: map[string]string{}}
}

// BuildVariantMap normalizes rows and builds the lookup table. Keys keep the
// order in which they first appear in rows, so fuzzy tie-breaks are
// reproducible for a given store ordering.
//
// Chains (a -> b, b -> c) are resolved to their root so that every value in
// the map is a fixed point.
func BuildVariantMap(rows []SynonymRow) *VariantMap {
	direct := make(map[string]string, len(rows)*2)
	order := make([]string, 0, len(rows)*2)
	seen := make(map[string]struct{}, len(rows)*2)
	addKey := func(k string) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		order = append(order, k)
	}

	ownCategory := make(map[string]string, len(rows))
	inheritedCategory := make(map[string]string, len(rows))

	for _, row := range rows {
		token := Normalize(row.Token)
		if token == "" {
			continue
		}
		canonical := Normalize(row.ExpandsTo)
		if canonical == "" {
			canonical = token
		}

		direct[token] = canonical
		addKey(token)
		if _, ok := direct[canonical]; !ok {
			direct[canonical] = canonical
		}
		addKey(canonical)

		if row.Category != "" {
			ownCategory[token] = row.Category
			if _, ok := inheritedCategory[canonical]; !ok {
				inheritedCategory[canonical] = row.Category
			}
		}
	}

	vm := &VariantMap{
		canonical:  make(map[string]string, len(direct)),
		keys:       order,
		categories: make(map[string]string, len(ownCategory)+len(inheritedCategory)),
	}
	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	for _, k := range order {
		vm.canonical[k] = resolveRoot(direct, rank, k)
	}
	for k, c := range inheritedCategory {
		vm.categories[k] = c
	}
	for k, c := range ownCategory {
		vm.categories[k] = c
	}
	for _, k := range order {
		root := vm.canonical[k]
		if _, ok := vm.categories[root]; ok {
			continue
		}
		if c, ok := vm.categories[k]; ok {
			vm.categories[root] = c
		}
	}
	return vm
}

// resolveRoot follows token through direct until it reaches a fixed point.
// Members of a cycle all resolve to the cycle member that appeared first.
func resolveRoot(direct map[string]string, rank map[string]int, token string) string {
	path := []string{token}
	pos := map[string]int{token: 0}
	cur := token
	for {
		next, ok := direct[cur]
		if !ok || next == cur {
			return cur
		}
		if at, loop := pos[next]; loop {
			root := path[at]
			for _, t := range path[at+1:] {
				if rank[t] < rank[root] {
					root = t
				}
			}
			return root
		}
		pos[next] = len(path)
		path = append(path, next)
		cur = next
	}
}

// Lookup returns the canonical form of an already normalized token.
func (m *VariantMap) Lookup(token string) (string, bool) {
	if m == nil {
		return "", false
	}
	c, ok := m.canonical[token]
	return c, ok
}

// Keys returns the known tokens in their pinned order. The slice must not be
// modified.
func (m *VariantMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Canonicals returns the distinct canonical tokens in key order.
func (m *VariantMap) Canonicals() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.keys))
	seen := make(map[string]struct{}, len(m.keys))
	for _, k := range m.keys {
		c := m.canonical[k]
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Category returns the diagnostic category of a token, if any.
func (m *VariantMap) Category(token string) (string, bool) {
	if m == nil {
		return "", false
	}
	c, ok := m.categories[token]
	return c, ok
}

func (m *VariantMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
