package resolver

import "encoding/json"

// packageJSON is the subset of package.json fields C1 needs: a name (for
// diagnostics) and the raw field set entryFor consults in caller-supplied
// order. Node's full conditional-exports algorithm is out of scope here
// (see DESIGN.md): this models an ordered list of field names,
// first-present-wins, over whatever fields actually appear in the file —
// not just "main"/"module"/"browser".
type packageJSON struct {
	Name string `json:"name"`
	raw  map[string]json.RawMessage
}

func parsePackageJSON(data []byte) (*packageJSON, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	pkg := &packageJSON{raw: raw}
	if v, ok := raw["name"]; ok {
		json.Unmarshal(v, &pkg.Name)
	}
	return pkg, nil
}

// entryFor returns the first field in fieldOrder that's present in the
// package.json and holds a plain string, falling back to "" (caller
// defaults to index.js) if none qualify. A field may legally be an object
// (e.g. "browser" mapping specific module paths to overrides); when it
// isn't a plain string we treat it as absent for main-entry purposes, a
// deliberate simplification (see DESIGN.md).
func (p *packageJSON) entryFor(fieldOrder []string) string {
	for _, field := range fieldOrder {
		v, ok := p.raw[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
