package domain

import "strings"

// Field names one known professional attribute.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
	FieldBio   Field = "bio"
)

// KnownFields is the closed set of attributes onboarding collects, in the
// order instructions list them.
var KnownFields = []Field{FieldName, FieldEmail, FieldBio}

// RequiredFields must all be present before onboarding completes.
var RequiredFields = []Field{FieldName}

// ProfessionalFields holds the attributes gathered so far. A nil pointer means
// the attribute is unknown.
type ProfessionalFields struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Bio   *string `json:"bio,omitempty"`
}

// Get returns the trimmed value of f and whether it is present.
func (p ProfessionalFields) Get(f Field) (string, bool) {
	var v *string
	switch f {
	case FieldName:
		v = p.Name
	case FieldEmail:
		v = p.Email
	case FieldBio:
		v = p.Bio
	}
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(*v)
	return s, s != ""
}

// Set stores a trimmed copy of value under f. Blank values clear nothing and
// are ignored.
func (p *ProfessionalFields) Set(f Field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	switch f {
	case FieldName:
		p.Name = &value
	case FieldEmail:
		p.Email = &value
	case FieldBio:
		p.Bio = &value
	}
}

// Merge returns p overlaid with every present field of newer. Fields absent
// from newer keep their current value.
func (p ProfessionalFields) Merge(newer ProfessionalFields) ProfessionalFields {
	out := p.normalized()
	for _, f := range KnownFields {
		if v, ok := newer.Get(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

// FillGaps sets only the fields of p that are currently absent.
func (p ProfessionalFields) FillGaps(fallback ProfessionalFields) ProfessionalFields {
	out := p.normalized()
	for _, f := range KnownFields {
		if _, ok := out.Get(f); ok {
			continue
		}
		if v, ok := fallback.Get(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

// Missing lists the fields of required that are absent, in order.
func (p ProfessionalFields) Missing(required []Field) []Field {
	missing := make([]Field, 0, len(required))
	for _, f := range required {
		if _, ok := p.Get(f); !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Empty reports whether no field is present.
func (p ProfessionalFields) Empty() bool {
	for _, f := range KnownFields {
		if _, ok := p.Get(f); ok {
			return false
		}
	}
	return true
}

// Equal compares present values field by field.
func (p ProfessionalFields) Equal(o ProfessionalFields) bool {
	for _, f := range KnownFields {
		a, aok := p.Get(f)
		b, bok := o.Get(f)
		if aok != bok || a != b {
			return false
		}
	}
	return true
}

func (p ProfessionalFields) normalized() ProfessionalFields {
	var out ProfessionalFields
	for _, f := range KnownFields {
		if v, ok := p.Get(f); ok {
			out.Set(f, v)
		}
	}
	return out
}

// SameFields reports whether a and b hold the same fields in the same order.
func SameFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FieldStrings converts fields to their wire names.
func FieldStrings(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
