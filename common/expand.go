package common

import (
	"github.com/minvws/nl-covid19-coronacheck-dgc/valueset"
)

// ExpandValues replaces the coded fields of every certificate with their display text.
// Only use the result for display; the codes are what was signed.
func (c *Container) ExpandValues() {
	c.ExpandValuesWith(valueset.Lookup)
}

func (c *Container) ExpandValuesWith(lookup func(string) string) {
	for _, dcc := range c.Certs {
		dcc.ExpandValuesWith(lookup)
	}
}

func (dcc *DCC) ExpandValues() {
	dcc.ExpandValuesWith(valueset.Lookup)
}

func (dcc *DCC) ExpandValuesWith(lookup func(string) string) {
	if dcc == nil {
		return
	}

	for _, v := range dcc.Vaccinations {
		v.ExpandValuesWith(lookup)
	}
	for _, t := range dcc.Tests {
		t.ExpandValuesWith(lookup)
	}
	for _, r := range dcc.Recoveries {
		r.ExpandValuesWith(lookup)
	}
}

func (v *DCCVaccination) ExpandValues() {
	v.ExpandValuesWith(valueset.Lookup)
}

func (v *DCCVaccination) ExpandValuesWith(lookup func(string) string) {
	if v == nil {
		return
	}

	v.DiseaseTargeted = lookup(v.DiseaseTargeted)
	v.Vaccine = lookup(v.Vaccine)
	v.MedicinalProduct = lookup(v.MedicinalProduct)
	v.Manufacturer = lookup(v.Manufacturer)
	v.CountryOfVaccination = lookup(v.CountryOfVaccination)
}

func (t *DCCTest) ExpandValues() {
	t.ExpandValuesWith(valueset.Lookup)
}

func (t *DCCTest) ExpandValuesWith(lookup func(string) string) {
	if t == nil {
		return
	}

	t.DiseaseTargeted = lookup(t.DiseaseTargeted)
	t.TypeOfTest = lookup(t.TypeOfTest)
	t.TestResult = lookup(t.TestResult)
	if t.TestNameAndManufacturer != "" {
		t.TestNameAndManufacturer = lookup(t.TestNameAndManufacturer)
	}
	t.CountryOfTest = lookup(t.CountryOfTest)
	t.CertificateIssuer = lookup(t.CertificateIssuer)
}

func (r *DCCRecovery) ExpandValues() {
	r.ExpandValuesWith(valueset.Lookup)
}

func (r *DCCRecovery) ExpandValuesWith(lookup func(string) string) {
	if r == nil {
		return
	}

	r.DiseaseTargeted = lookup(r.DiseaseTargeted)
	r.CountryOfTest = lookup(r.CountryOfTest)
}
