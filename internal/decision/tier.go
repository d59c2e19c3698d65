package decision

import "fmt"

// Tier is an affordability classification. Higher values are worse.
type Tier int

const (
	Excellent Tier = iota + 1
	Good
	Caution
	HighRisk
)

var tierNames = map[Tier]string{
	Excellent: "excellent",
	Good:      "good",
	Caution:   "caution",
	HighRisk:  "high-risk",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// RiskLevel maps the tier onto 1 (excellent) through 4 (high-risk)
func (t Tier) RiskLevel() int {
	return int(t)
}

// WorseThan reports whether t is strictly less affordable than other
func (t Tier) WorseThan(other Tier) bool {
	return t > other
}

// ParseTier parses the textual tier name
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown affordability tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("invalid affordability tier %d", int(t))
	}
	return []byte(name), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
