package enum

import "fmt"

// CompanyType identifies one of the two fixed seller entities invoices are
// issued for. Values match the keys persisted in the company_type column.
type CompanyType string

const (
	CompanyMaaDurga CompanyType = "maa-durga"
	CompanyBhagwati CompanyType = "bhagwati"
)

// AllCompanyTypes lists every known seller entity.
func AllCompanyTypes() []CompanyType {
	return []CompanyType{CompanyMaaDurga, CompanyBhagwati}
}

func (c CompanyType) String() string {
	return string(c)
}

// Valid reports whether the value names a known seller entity.
func (c CompanyType) Valid() bool {
	switch c {
	case CompanyMaaDurga, CompanyBhagwati:
		return true
	}
	return false
}

// ParseCompanyType converts a raw string into a CompanyType.
func ParseCompanyType(s string) (CompanyType, error) {
	c := CompanyType(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown company type %q", s)
	}
	return c, nil
}
