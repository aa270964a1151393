package customerror

import "fmt"

type CustomError struct {
	Module   string
	Endpoint string
	Message  string
}

var ErrTimedOut = fmt.Errorf("TimedOut")

var ErrJwtInvalid = fmt.Errorf("JWTInvalid")

var ErrJwtVersionIncorrect = fmt.Errorf("JwtVersionIncorrect")

var ErrDuplicateListing = fmt.Errorf("DuplicateListing")

var ErrSavedRequiresUser = fmt.Errorf("saved listings require a signed-in user")

func (customError CustomError) Error() string {
	return fmt.Sprintf("ERROR|%s|%s:%s", customError.Endpoint, customError.Module, customError.Message)
}

func (customError *CustomError) AppendModule(module string) {
	customError.Module = module + "." + customError.Module
}

func NewError(module, endpoint, message string) error {
	return CustomError{
		Module:   module,
		Endpoint: endpoint,
		Message:  message,
	}
}
