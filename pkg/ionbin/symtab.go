package ionbin

// Ion 1.0 system symbols. Symbol id 0 is reserved and has no text, so the
// system table has Len() == 10.
var systemSymbols = []string{
	"$ion",
	"$ion_1_0",
	"$ion_symbol_table",
	"name",
	"version",
	"imports",
	"symbols",
	"max_id",
	"$ion_shared_symbol_table",
}

// Well-known system symbol ids used while processing local symbol tables.
const (
	symbolIonSymbolTable = 3
	symbolImports        = 6
	symbolSymbols        = 7
)

type symbol struct {
	text  string
	known bool // false for symbols declared with non-string/null text
}

// SymbolTable maps symbol ids to text. The cursor owns and maintains it;
// the inspector only reads resolved text and tails of newly added symbols.
type SymbolTable struct {
	symbols []symbol
}

// NewSymbolTable returns a table holding only the Ion 1.0 system symbols.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{}
	st.Reset()
	return st
}

// Reset discards all local symbols, leaving the system table.
func (st *SymbolTable) Reset() {
	st.symbols = make([]symbol, 1, 1+len(systemSymbols))
	for _, text := range systemSymbols {
		st.symbols = append(st.symbols, symbol{text: text, known: true})
	}
}

// Len is the number of symbol ids in the table, counting the reserved $0.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// SystemLen is the Len of a table holding only system symbols.
func SystemLen() int {
	return 1 + len(systemSymbols)
}

// TextFor resolves a symbol id. ok is false for $0, out-of-range ids, and
// symbols declared with unknown text.
func (st *SymbolTable) TextFor(id int) (string, bool) {
	if id <= 0 || id >= len(st.symbols) {
		return "", false
	}
	s := st.symbols[id]
	return s.text, s.known
}

// Tail returns the text of every symbol with id >= from, in id order.
// Symbols with unknown text appear as empty strings.
func (st *SymbolTable) Tail(from int) []string {
	if from < 1 {
		from = 1
	}
	if from >= len(st.symbols) {
		return nil
	}
	tail := make([]string, 0, len(st.symbols)-from)
	for _, s := range st.symbols[from:] {
		tail = append(tail, s.text)
	}
	return tail
}

func (st *SymbolTable) append(text string, known bool) {
	st.symbols = append(st.symbols, symbol{text: text, known: known})
}
