package enums

type ConnectionKind string

const (
	ConnectionKindSaved      ConnectionKind = "saved"
	ConnectionKindRestricted ConnectionKind = "restricted"
)

func (k ConnectionKind) IsValid() bool {
	return k == ConnectionKindSaved || k == ConnectionKindRestricted
}
