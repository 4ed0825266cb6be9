package tween

// Target is anything with named numeric properties.
//
// Plain properties are read and written through Property/SetProperty.
// Compound properties (one-level records such as scale {x, y}) go through
// Field/SetField. The ok results report presence; absent properties are
// skipped by animators, never created.
type Target interface {
	Property(key string) (float64, bool)
	SetProperty(key string, value float64)
	Field(key, sub string) (float64, bool)
	SetField(key, sub string, value float64)
}

// Props is a map-backed Target.
type Props struct {
	Values  map[string]float64
	Records map[string]map[string]float64
}

// NewProps creates an empty Props.
func NewProps() *Props {
	return &Props{
		Values:  make(map[string]float64),
		Records: make(map[string]map[string]float64),
	}
}

// Set stores a plain property and returns p for chaining.
func (p *Props) Set(key string, value float64) *Props {
	p.Values[key] = value
	return p
}

// SetRecord stores a compound property and returns p for chaining.
func (p *Props) SetRecord(key string, fields map[string]float64) *Props {
	rec := make(map[string]float64, len(fields))
	for k, v := range fields {
		rec[k] = v
	}
	p.Records[key] = rec
	return p
}

// Property implements Target.
func (p *Props) Property(key string) (float64, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// SetProperty implements Target. Unknown keys are ignored.
func (p *Props) SetProperty(key string, value float64) {
	if _, ok := p.Values[key]; ok {
		p.Values[key] = value
	}
}

// Field implements Target.
func (p *Props) Field(key, sub string) (float64, bool) {
	rec, ok := p.Records[key]
	if !ok {
		return 0, false
	}
	v, ok := rec[sub]
	return v, ok
}

// SetField implements Target. Unknown keys are ignored.
func (p *Props) SetField(key, sub string, value float64) {
	rec, ok := p.Records[key]
	if !ok {
		return
	}
	if _, ok := rec[sub]; ok {
		rec[sub] = value
	}
}
