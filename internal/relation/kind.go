package relation

// Kind names a collection relationship the Resolver can answer.
type Kind string

const (
	PaternalAunt  Kind = "paternal_aunt"
	PaternalUncle Kind = "paternal_uncle"
	MaternalAunt  Kind = "maternal_aunt"
	MaternalUncle Kind = "maternal_uncle"
	BrotherInLaw  Kind = "brother_in_law"
	SisterInLaw   Kind = "sister_in_law"
	Son           Kind = "son"
	Daughter      Kind = "daughter"
	Siblings      Kind = "siblings"
)

var kinds = []Kind{
	PaternalAunt,
	PaternalUncle,
	MaternalAunt,
	MaternalUncle,
	BrotherInLaw,
	SisterInLaw,
	Son,
	Daughter,
	Siblings,
}

// Kinds returns the relationship vocabulary in a stable order.
func Kinds() []Kind {
	result := make([]Kind, len(kinds))
	copy(result, kinds)
	return result
}

// ParseKind looks up a relationship token.
func ParseKind(token string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == token {
			return k, true
		}
	}
	return "", false
}

// Relative names a single-result relationship.
type Relative string

const (
	PaternalGrandmother Relative = "paternal_grandmother"
	MaternalGrandmother Relative = "maternal_grandmother"
	SpouseMother        Relative = "spouse_mother"
)

// Relatives returns the single-result vocabulary.
func Relatives() []Relative {
	return []Relative{PaternalGrandmother, MaternalGrandmother, SpouseMother}
}
