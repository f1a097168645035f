package entity

import "github.com/lnprasad/invoice-api/internal/domain/enum"

// CompanyProfile holds the fixed letterhead details of a seller entity.
// Both sellers operate from Pakur, Jharkhand, which is why the home state
// code is a single policy constant rather than per-company data.
type CompanyProfile struct {
	Key        enum.CompanyType `json:"key"`
	Name       string           `json:"name"`
	Proprietor string           `json:"proprietor,omitempty"`
	Address    string           `json:"address"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	PIN        string           `json:"pin"`
	Email      string           `json:"email"`
	GSTIN      string           `json:"gstin"`
}

var companyProfiles = map[enum.CompanyType]CompanyProfile{
	enum.CompanyMaaDurga: {
		Key:        enum.CompanyMaaDurga,
		Name:       "MAA DURGA STONE WORKS",
		Proprietor: "Laxmi Narayan Prasad",
		Address:    "MATIACHWA(PAKURIA)",
		City:       "PAKUR",
		State:      "JHARKHAND",
		PIN:        "816117",
		Email:      "laxmiprasad9470@gmail.com",
		GSTIN:      "20BDOPP7141M1Z8",
	},
	enum.CompanyBhagwati: {
		Key:        enum.CompanyBhagwati,
		Name:       "M/S BHAGWATI STONE WORKS",
		Address:    "MOUZA:Khaksa(Pakuria)",
		City:       "PAKUR",
		State:      "JHARKHAND",
		PIN:        "816117",
		Email:      "stonebhagwati97@gmail.com",
		GSTIN:      "20BMAPB5737J1ZH",
	},
}

// ProfileFor returns the letterhead profile of a seller entity.
func ProfileFor(c enum.CompanyType) CompanyProfile {
	return companyProfiles[c]
}

// AllProfiles returns the seller profiles in a stable order.
func AllProfiles() []CompanyProfile {
	profiles := make([]CompanyProfile, 0, len(companyProfiles))
	for _, c := range enum.AllCompanyTypes() {
		profiles = append(profiles, companyProfiles[c])
	}
	return profiles
}
