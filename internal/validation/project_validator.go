package validation

const projectNameField = "project_name"

// ProjectValidator validates project names before they reach the registry or the log
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{
		validator: NewValidator(),
	}
}

// ValidateProjectName validates a name as it is written to the log
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	validationError := NewValidationError()

	if !pv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError(projectNameField)
		return validationError
	}

	if !pv.validator.IsValidStringLength(name, MaxProjectNameLength) {
		validationError.AddInvalidLengthError(projectNameField, name, MaxProjectNameLength)
	}

	if !pv.validator.IsSingleToken(name) {
		validationError.AddInvalidCharacterError(projectNameField, name)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidProjectName removes spaces from name and validates the result
func (pv *ProjectValidator) GetValidProjectName(name string) (string, error) {
	cleaned := pv.validator.StripSpaces(name)
	if err := pv.ValidateProjectName(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}
