package dto

import (
	"testing"

	"kyc.igtapps.io/infrastructure/validator"
)

func TestCreateUserDTOValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload CreateUserDTO
		wantErr bool
	}{
		{
			name: "valid payload",
			payload: CreateUserDTO{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
				Password:  "correct horse battery",
			},
			wantErr: false,
		},
		{
			name: "name with apostrophe and hyphen",
			payload: CreateUserDTO{
				FirstName: "Anne-Marie",
				LastName:  "O'Neill",
				Email:     "am@example.com",
				Password:  "longenoughpassword",
			},
			wantErr: false,
		},
		{
			name: "digits in name rejected",
			payload: CreateUserDTO{
				FirstName: "Jane99",
				LastName:  "Doe",
				Email:     "jane@example.com",
				Password:  "longenoughpassword",
			},
			wantErr: true,
		},
		{
			name: "bad email rejected",
			payload: CreateUserDTO{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "not-an-email",
				Password:  "longenoughpassword",
			},
			wantErr: true,
		},
		{
			name: "short password rejected",
			payload: CreateUserDTO{
				FirstName: "Jane",
				LastName:  "Doe",
				Email:     "jane@example.com",
				Password:  "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validator.ValidatorInstance.ValidateStruct(tt.payload)
			if (errs != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestLivenessActionValidation(t *testing.T) {
	for _, action := range []string{"blink", "left", "right"} {
		payload := LivenessChallengeRequestDTO{Action: action}
		if errs := validator.ValidatorInstance.ValidateStruct(payload); errs != nil {
			t.Errorf("action %q rejected: %v", action, errs)
		}
	}
	payload := LivenessChallengeRequestDTO{Action: "smile"}
	if errs := validator.ValidatorInstance.ValidateStruct(payload); errs == nil {
		t.Error("action smile accepted, want rejection")
	}
}
