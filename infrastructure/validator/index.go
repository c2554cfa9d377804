package validator

func init() {
	validate.RegisterValidation("person_name", validatePersonName)
	validate.RegisterValidation("liveness_action", validateLivenessAction)
}

type Validator struct{}

func (v *Validator) ValidateStruct(payload interface{}) *[]error {
	return validateStruct(payload)
}

func (v *Validator) ValidateValue(value any, rules string) error {
	return validateField(value, rules)
}

var ValidatorInstance = Validator{}
