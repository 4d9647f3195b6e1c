package common

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/go-errors/errors"
)

type DCC struct {
	Version     string `cbor:"ver" json:"ver"`
	DateOfBirth string `cbor:"dob" json:"dob"`

	Name         *DCCName          `cbor:"nam" json:"nam"`
	Vaccinations []*DCCVaccination `cbor:"v,omitempty" json:"v"`
	Tests        []*DCCTest        `cbor:"t,omitempty" json:"t"`
	Recoveries   []*DCCRecovery    `cbor:"r,omitempty" json:"r"`
}

type DCCName struct {
	FamilyName             string `cbor:"fn,omitempty" json:"fn"`
	StandardizedFamilyName string `cbor:"fnt" json:"fnt"`
	GivenName              string `cbor:"gn,omitempty" json:"gn"`
	StandardizedGivenName  string `cbor:"gnt,omitempty" json:"gnt"`
}

type DCCVaccination struct {
	DiseaseTargeted       string `cbor:"tg" json:"tg"`
	Vaccine               string `cbor:"vp" json:"vp"`
	MedicinalProduct      string `cbor:"mp" json:"mp"`
	Manufacturer          string `cbor:"ma" json:"ma"`
	DoseNumber            int    `cbor:"dn" json:"dn"`
	TotalSeriesOfDoses    int    `cbor:"sd" json:"sd"`
	DateOfVaccination     string `cbor:"dt" json:"dt"`
	CountryOfVaccination  string `cbor:"co" json:"co"`
	CertificateIssuer     string `cbor:"is" json:"is"`
	CertificateIdentifier string `cbor:"ci" json:"ci"`
}

type DCCTest struct {
	DiseaseTargeted         string `cbor:"tg" json:"tg"`
	TypeOfTest              string `cbor:"tt" json:"tt"`
	TestName                string `cbor:"nm,omitempty" json:"nm,omitempty"`
	TestNameAndManufacturer string `cbor:"ma,omitempty" json:"ma,omitempty"`
	DateTimeOfCollection    string `cbor:"sc" json:"sc"`
	DateTimeOfTestResult    string `cbor:"dr,omitempty" json:"dr,omitempty"`
	TestResult              string `cbor:"tr" json:"tr"`
	TestingCentre           string `cbor:"tc,omitempty" json:"tc,omitempty"`
	CountryOfTest           string `cbor:"co" json:"co"`
	CertificateIssuer       string `cbor:"is" json:"is"`
	CertificateIdentifier   string `cbor:"ci" json:"ci"`
}

type DCCRecovery struct {
	DiseaseTargeted         string `cbor:"tg" json:"tg"`
	DateOfFirstPositiveTest string `cbor:"fr" json:"fr"`
	CountryOfTest           string `cbor:"co" json:"co"`
	CertificateIssuer       string `cbor:"is" json:"is"`
	CertificateValidFrom    string `cbor:"df" json:"df"`
	CertificateValidUntil   string `cbor:"du" json:"du"`
	CertificateIdentifier   string `cbor:"ci" json:"ci"`
}

func (dcc *DCC) UnmarshalCBOR(data []byte) error {
	type plain DCC
	err := unmarshalWithRequired(data, (*plain)(dcc), "ver", "nam", "dob")
	if err != nil {
		return err
	}

	if dcc.Name == nil {
		return errors.Errorf("Missing field 'nam'")
	}

	// Groups that are null on the wire become empty lists
	if dcc.Vaccinations == nil {
		dcc.Vaccinations = []*DCCVaccination{}
	}
	if dcc.Tests == nil {
		dcc.Tests = []*DCCTest{}
	}
	if dcc.Recoveries == nil {
		dcc.Recoveries = []*DCCRecovery{}
	}

	for _, v := range dcc.Vaccinations {
		if v == nil {
			return errors.Errorf("Could not process empty vaccination entry")
		}
	}
	for _, t := range dcc.Tests {
		if t == nil {
			return errors.Errorf("Could not process empty test entry")
		}
	}
	for _, r := range dcc.Recoveries {
		if r == nil {
			return errors.Errorf("Could not process empty recovery entry")
		}
	}

	return nil
}

func (name *DCCName) UnmarshalCBOR(data []byte) error {
	type plain DCCName
	return unmarshalWithRequired(data, (*plain)(name), "fnt")
}

func (v *DCCVaccination) UnmarshalCBOR(data []byte) error {
	type plain DCCVaccination
	err := unmarshalWithRequired(data, (*plain)(v), "tg", "vp", "mp", "ma", "dn", "sd", "dt", "co", "is", "ci")
	if err != nil {
		return err
	}

	if v.DoseNumber < 0 || v.TotalSeriesOfDoses < 0 {
		return errors.Errorf("Invalid dose number %d of %d", v.DoseNumber, v.TotalSeriesOfDoses)
	}

	return nil
}

func (t *DCCTest) UnmarshalCBOR(data []byte) error {
	type plain DCCTest
	return unmarshalWithRequired(data, (*plain)(t), "tg", "tt", "sc", "tr", "co", "is", "ci")
}

func (r *DCCRecovery) UnmarshalCBOR(data []byte) error {
	type plain DCCRecovery
	return unmarshalWithRequired(data, (*plain)(r), "tg", "fr", "co", "is", "df", "du", "ci")
}

// unmarshalWithRequired fails when one of the required keys is absent, then decodes into v
func unmarshalWithRequired(data []byte, v interface{}, required ...string) error {
	var fields map[string]cbor.RawMessage
	err := strictDecMode.Unmarshal(data, &fields)
	if err != nil {
		return err
	}

	if fields == nil {
		return errors.Errorf("Expected a map, found null")
	}

	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return errors.Errorf("Missing field '%s'", key)
		}
	}

	return cbor.Unmarshal(data, v)
}
