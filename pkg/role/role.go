package role

import (
	"fmt"
	"strings"
)

// Role is the authority tier of an account on the land registry.
type Role int

const (
	// None means the tier could not be determined (no account, no contract, or the read failed).
	None Role = iota
	Citizen
	TaxAuthority
	Court
	Registrar
	Admin
)

var names = map[Role]string{
	None:         "NONE",
	Citizen:      "CITIZEN",
	TaxAuthority: "TAX_AUTHORITY",
	Court:        "COURT",
	Registrar:    "REGISTRAR",
	Admin:        "ADMIN",
}

func (r Role) String() string {
	if name, ok := names[r]; ok {
		return name
	}
	return names[None]
}

// Parse maps a role string from any source to the canonical Role.
// Matching ignores case, and dashes or spaces are read as underscores.
// Unknown strings yield None and an error.
func Parse(s string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if normalized == "TAXAUTHORITY" {
		return TaxAuthority, nil
	}
	for r, name := range names {
		if name == normalized {
			return r, nil
		}
	}
	return None, fmt.Errorf("unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values decode to None
// so that a backend sending a role this client does not know never fails decoding.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		*r = None
		return nil
	}
	*r = parsed
	return nil
}
