// Package units holds named catalogues of nouns with the inflected forms
// numwords needs, so callers can ask for "metr" instead of spelling out
// all three forms.
package units

import (
	_ "embed"
	"fmt"
	"io"
	"sort"

	"github.com/remiges-tech/slownie/numwords"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalogue []byte

// Catalogue maps unit keys to their grammatical forms. It is not modified
// after construction and can be shared between goroutines.
type Catalogue struct {
	forms map[string]numwords.GrammaticalForm
}

// Default returns the built-in catalogue.
func Default() *Catalogue {
	c, err := Parse(defaultCatalogue)
	if err != nil {
		panic(fmt.Sprintf("units: bad built-in catalogue: %v", err))
	}
	return c
}

// Load reads a YAML catalogue of the form
//
//	metr:
//	  nom_sg: metr
//	  nom_pl: metry
//	  gen_pl: metrów
func Load(r io.Reader) (*Catalogue, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading unit catalogue: %w", err)
	}
	return Parse(b)
}

// Parse is Load for an in-memory document.
func Parse(b []byte) (*Catalogue, error) {
	forms := map[string]numwords.GrammaticalForm{}
	if err := yaml.Unmarshal(b, &forms); err != nil {
		return nil, fmt.Errorf("parsing unit catalogue: %w", err)
	}
	for key, f := range forms {
		if !f.Valid() {
			return nil, fmt.Errorf("unit %q: all of nom_sg, nom_pl and gen_pl are required", key)
		}
	}
	return &Catalogue{forms: forms}, nil
}

// Merge returns a catalogue holding the entries of c overridden by those of other.
func (c *Catalogue) Merge(other *Catalogue) *Catalogue {
	forms := make(map[string]numwords.GrammaticalForm, len(c.forms)+len(other.forms))
	for k, v := range c.forms {
		forms[k] = v
	}
	for k, v := range other.forms {
		forms[k] = v
	}
	return &Catalogue{forms: forms}
}

// Lookup returns a copy of the forms registered under key.
func (c *Catalogue) Lookup(key string) (*numwords.GrammaticalForm, bool) {
	f, ok := c.forms[key]
	if !ok {
		return nil, false
	}
	return &f, true
}

// Keys returns the unit keys in sorted order.
func (c *Catalogue) Keys() []string {
	keys := make([]string, 0, len(c.forms))
	for k := range c.forms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of units in the catalogue.
func (c *Catalogue) Len() int {
	return len(c.forms)
}
