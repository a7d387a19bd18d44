package api

// General errors
var (
	ErrNil        = NewBusinessError(0, "Success")
	ErrValidation = NewBusinessError(1, "Invalid parameter")
	ErrInternal   = NewBusinessError(2, "Internal server error")
)

// BusinessError is the envelope of every gateway response. Code 0 means success.
type BusinessError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

func (err *BusinessError) Error() string {
	return err.Message
}

// WithData returns a copy of the error carrying data.
func (err *BusinessError) WithData(data interface{}) *BusinessError {
	return &BusinessError{Code: err.Code, Message: err.Message, Data: data}
}
