package tonecodec

import (
	"fmt"
	"slices"
)

// Triplet is the set of three tones that identify one symbol.
type Triplet struct {
	Low  float64
	Mid  float64
	High float64
}

// Tones returns the triplet as a slice in low, mid, high order.
func (t Triplet) Tones() []float64 {
	return []float64{t.Low, t.Mid, t.High}
}

// symbolEntry pairs a symbol with its triplet.
type symbolEntry struct {
	symbol  rune
	triplet Triplet
}

// symbolTable is populated once at init and never written afterwards.
// Symbols are laid out as a base-3 positional code over the three bands,
// 'a' = (low[0], mid[0], high[0]) through ' ' = (low[2], mid[2], high[2]).
var (
	symbolTable   []symbolEntry
	symbolIndex   map[rune]int
	distinctFreqs []float64
)

func init() {
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz ")
	symbolTable = make([]symbolEntry, 0, alphabetSize)
	symbolIndex = make(map[rune]int, alphabetSize)

	for i, r := range alphabet {
		tr := Triplet{
			Low:  lowBand[i/9],
			Mid:  midBand[(i/3)%3],
			High: highBand[i%3],
		}
		symbolIndex[r] = len(symbolTable)
		symbolTable = append(symbolTable, symbolEntry{symbol: r, triplet: tr})

		// First-appearance order, walking the table and each triplet low to high.
		for _, f := range tr.Tones() {
			if !slices.Contains(distinctFreqs, f) {
				distinctFreqs = append(distinctFreqs, f)
			}
		}
	}
}

// FrequenciesOf returns the tone triplet for symbol r.
// The lookup is exact: callers must lowercase letters first.
func FrequenciesOf(r rune) (Triplet, error) {
	idx, ok := symbolIndex[r]
	if !ok {
		return Triplet{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
	}
	return symbolTable[idx].triplet, nil
}

// Symbols returns every encodable symbol in table order.
func Symbols() []rune {
	out := make([]rune, len(symbolTable))
	for i, e := range symbolTable {
		out[i] = e.symbol
	}
	return out
}

// DistinctFrequencies returns the union of all triplet tones in a fixed
// order: first appearance while walking the table from 'a' to ' '.
// The decoder uses this order to break magnitude ties.
func DistinctFrequencies() []float64 {
	return slices.Clone(distinctFreqs)
}

// IsSymbol reports whether r has a table entry.
func IsSymbol(r rune) bool {
	_, ok := symbolIndex[r]
	return ok
}
