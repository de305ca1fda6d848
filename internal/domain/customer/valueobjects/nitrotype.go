package valueobjects

import "fmt"

type NitroType string

const (
	NitroClassic NitroType = "CLASSIC"
	NitroBasic   NitroType = "BASIC"
	NitroPremium NitroType = "PREMIUM"
)

var validNitroTypes = map[NitroType]bool{
	NitroClassic: true,
	NitroBasic:   true,
	NitroPremium: true,
}

func (n NitroType) String() string {
	return string(n)
}

func (n NitroType) IsValid() bool {
	return validNitroTypes[n]
}

func ParseNitroType(s string) (NitroType, error) {
	n := NitroType(s)
	if !n.IsValid() {
		return "", fmt.Errorf("invalid nitro type: %s", s)
	}
	return n, nil
}

// AllNitroTypes lists the types in display order.
func AllNitroTypes() []NitroType {
	return []NitroType{NitroClassic, NitroBasic, NitroPremium}
}
