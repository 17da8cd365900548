package domain

import "sort"

// SymbolTable maps symbolic names used in token programs to their values
type SymbolTable map[string]string

// Names returns the symbol names in sorted order
func (t SymbolTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy
func (t SymbolTable) Clone() SymbolTable {
	result := make(SymbolTable, len(t))
	for k, v := range t {
		result[k] = v
	}
	return result
}
