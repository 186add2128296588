package source

// ProviderID tags a result with the source it was extracted from.
type ProviderID string

const (
	Animasu ProviderID = "animasu"
)

// ProviderIDs returns every known provider identifier.
func ProviderIDs() []ProviderID {
	return []ProviderID{Animasu}
}

func (p ProviderID) String() string {
	return string(p)
}
