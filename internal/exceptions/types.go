package exceptions

import "fmt"

type ServiceError struct {
	StatusCode int
	Cause      error
}

func (se *ServiceError) Error() string {
	return se.Cause.Error()
}

type RequestError interface {
	ToServiceError() *ServiceError
	Error() string
}

// ConfigurationError covers missing or incomplete proxy configuration,
// detected at request entry before anything is fetched.
type ConfigurationError struct {
	Message string
}

func (ce *ConfigurationError) Error() string {
	return ce.Message
}

func (ce *ConfigurationError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ce,
	}
}

func Configuration(message string) *ConfigurationError {
	return &ConfigurationError{
		Message: message,
	}
}

// UpstreamRejectedError surfaces a non-200 upstream answer with the upstream
// status code and body intact.
type UpstreamRejectedError struct {
	StatusCode int
	Body       string
}

func (ue *UpstreamRejectedError) Error() string {
	return fmt.Sprintf("API call failed: %d - %s", ue.StatusCode, ue.Body)
}

func (ue *UpstreamRejectedError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: ue.StatusCode,
		Cause:      ue,
	}
}

func UpstreamRejected(statusCode int, body string) *UpstreamRejectedError {
	return &UpstreamRejectedError{
		StatusCode: statusCode,
		Body:       body,
	}
}

type TimeoutError struct {
	Message string
}

func (te *TimeoutError) Error() string {
	return te.Message
}

func (te *TimeoutError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 408,
		Cause:      te,
	}
}

func Timeout(message string) *TimeoutError {
	return &TimeoutError{
		Message: message,
	}
}

// InvalidResponseError is a 200 from upstream whose body could not be parsed.
type InvalidResponseError struct {
	Message string
}

func (ie *InvalidResponseError) Error() string {
	return ie.Message
}

func (ie *InvalidResponseError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 502,
		Cause:      ie,
	}
}

func InvalidResponse(message string) *InvalidResponseError {
	return &InvalidResponseError{
		Message: message,
	}
}

type InvalidInputError struct {
	Message string
}

func (ie *InvalidInputError) Error() string {
	return ie.Message
}

func (ie *InvalidInputError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 400,
		Cause:      ie,
	}
}

func InvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{
		Message: message,
	}
}

type NotFoundError struct {
	Resource string
	Id       string
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("Could not find a %s with id: %s", nfe.Resource, nfe.Id)
}

func (nfe *NotFoundError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 404,
		Cause:      nfe,
	}
}

func NotFound(resource string, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Id:       id,
	}
}

type InternalServerError struct {
	Message string
}

func (ise *InternalServerError) Error() string {
	return ise.Message
}

func (ise *InternalServerError) ToServiceError() *ServiceError {
	return &ServiceError{
		StatusCode: 500,
		Cause:      ise,
	}
}

func InternalServer(message string) *InternalServerError {
	return &InternalServerError{
		Message: message,
	}
}
