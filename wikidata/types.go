package wikidata

// Value is one cell of a SPARQL result binding.
type Value struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Binding is one result row, keyed by the query's output variables.
type Binding map[string]Value

// Get returns the value bound to name, or "" when the variable is unbound.
func (b Binding) Get(name string) string {
	return b[name].Value
}

// Has reports whether the variable is bound in this row.
func (b Binding) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// resultsEnvelope mirrors the application/sparql-results+json layout.
type resultsEnvelope struct {
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

// Painter is one phase-1 result: an entity identifier plus its English label.
type Painter struct {
	ID   string // Wikidata entity ID, e.g. "Q5598"
	Name string // label as stored, may still be a bare Q-ID when untranslated
}
