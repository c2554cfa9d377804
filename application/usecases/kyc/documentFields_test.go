package kyc_usecases

import (
	"testing"

	"kyc.igtapps.io/application/utils"
	"kyc.igtapps.io/entities"
)

func TestFieldsViewCarriesOnlyMaskedIdentifier(t *testing.T) {
	fields := &entities.DocumentFields{
		UserID:           "user-1",
		IdentifierFull:   utils.GetStringPointer("4521 8836 9012"),
		IdentifierMasked: utils.GetStringPointer("XXXX XXXX 9012"),
		Name:             utils.GetStringPointer("Ramesh Kumar Sharma"),
		Confidence:       0.91,
	}

	view := fieldsView(fields)

	if _, ok := view["identifier"]; ok {
		t.Error("fieldsView() exposes the full identifier")
	}
	masked, ok := view["identifierMasked"].(*string)
	if !ok || masked == nil || *masked != "XXXX XXXX 9012" {
		t.Errorf("fieldsView() identifierMasked = %v, want XXXX XXXX 9012", view["identifierMasked"])
	}
}
