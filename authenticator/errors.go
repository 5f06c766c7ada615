package authenticator

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of an Error
type Kind string

const (
	KindUnsupportedArchitecture Kind = "unsupported_architecture"
	KindUnknownConfigKey        Kind = "unknown_config_key"
	KindMissingRequiredValue    Kind = "missing_required_value"
	KindStateRequired           Kind = "state_required"
	KindStateTooShort           Kind = "state_too_short"
	KindStateNotSet             Kind = "state_not_set"
	KindConfigNotSet            Kind = "config_not_set"
	KindClientNotFound          Kind = "client_not_found"
	KindClientError             Kind = "client_error"
	KindNotAuthenticated        Kind = "not_authenticated"
	KindNotAuthorized           Kind = "not_authorized"
	KindInputDataInvalid        Kind = "input_data_invalid"
)

// Sentinels for errors.Is matching. Only the Kind is compared.
var (
	ErrUnsupportedArchitecture = &Error{Kind: KindUnsupportedArchitecture}
	ErrUnknownConfigKey        = &Error{Kind: KindUnknownConfigKey}
	ErrMissingRequiredValue    = &Error{Kind: KindMissingRequiredValue}
	ErrStateRequired           = &Error{Kind: KindStateRequired}
	ErrStateTooShort           = &Error{Kind: KindStateTooShort}
	ErrStateNotSet             = &Error{Kind: KindStateNotSet}
	ErrConfigNotSet            = &Error{Kind: KindConfigNotSet}
	ErrClientNotFound          = &Error{Kind: KindClientNotFound}
	ErrClientError             = &Error{Kind: KindClientError}
	ErrNotAuthenticated        = &Error{Kind: KindNotAuthenticated}
	ErrNotAuthorized           = &Error{Kind: KindNotAuthorized}
	ErrInputDataInvalid        = &Error{Kind: KindInputDataInvalid}
)

// configLocation is used in configuration error messages
const configLocation = "Meveto configuration"

// Error is the single error type returned by the SDK for configuration,
// validation and provider failures. Context fields are populated depending
// on the Kind.
type Error struct {
	Kind    Kind
	Message string

	// Key is the offending configuration key
	Key string
	// Value is the rejected value (architecture)
	Value string
	// Supported lists the accepted values (architecture)
	Supported []string
	// MinLength is the configured minimum state length
	MinLength int
	// Errors holds provider validation errors (input data invalid)
	Errors []string
	// Description is the provider supplied error description or message
	Description string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Is implements errors.Is by comparing kinds
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the Kind of err, or an empty Kind if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func unsupportedArchitecture(value string, supported []string) *Error {
	quoted := make([]string, len(supported))
	for i, s := range supported {
		quoted[i] = "`" + s + "`"
	}
	return &Error{
		Kind:      KindUnsupportedArchitecture,
		Message:   fmt.Sprintf("`%s` is not supported. At the moment, supported architectures include: %s.", value, strings.Join(quoted, ", ")),
		Value:     value,
		Supported: append([]string(nil), supported...),
	}
}

func unknownConfigKey(key string) *Error {
	return &Error{
		Kind:    KindUnknownConfigKey,
		Message: fmt.Sprintf("Your `%s` array has an unexpected key `%s`.", configLocation, key),
		Key:     key,
	}
}

func missingRequiredValue(key string) *Error {
	return &Error{
		Kind:    KindMissingRequiredValue,
		Message: fmt.Sprintf("`%s` is required inside `%s` array and it can not be empty or null.", key, configLocation),
		Key:     key,
	}
}

func stateRequired() *Error {
	return &Error{
		Kind:    KindStateRequired,
		Message: "Current application request state can not be empty.",
	}
}

func stateTooShort(min int) *Error {
	return &Error{
		Kind:      KindStateTooShort,
		Message:   fmt.Sprintf("Current application request state must be at least `%d` characters long.", min),
		MinLength: min,
	}
}

func stateNotSet() *Error {
	return &Error{
		Kind:    KindStateNotSet,
		Message: "Current application request state is not set. Set the state before requesting a login URL.",
	}
}

// ConfigNotSetError is returned by request operations invoked before any
// configuration was supplied
func ConfigNotSetError() *Error {
	return &Error{
		Kind:    KindConfigNotSet,
		Message: "Your Meveto client configuration is not set.",
	}
}

func clientNotFound() *Error {
	return &Error{
		Kind:    KindClientNotFound,
		Message: "Your Meveto client credentials are incorrect. Check your client ID, secret and redirect URL. Redirect URL must be exactly the same as provided at the time of client registration.",
	}
}

func clientError(description string) *Error {
	return &Error{
		Kind:        KindClientError,
		Message:     fmt.Sprintf("Meveto authorization server responded with the following error. `%s`", description),
		Description: description,
	}
}

func notAuthenticated() *Error {
	return &Error{
		Kind:    KindNotAuthenticated,
		Message: "Meveto server could not authenticate your request and responded with a 401 status. Either an access token is missing or the provided token is not valid.",
	}
}

func notAuthorized() *Error {
	return &Error{
		Kind:    KindNotAuthorized,
		Message: "The specified access token is not authorized to access the requested information",
	}
}

func inputDataInvalid(errs []string) *Error {
	return &Error{
		Kind:    KindInputDataInvalid,
		Message: fmt.Sprintf("The following errors occurred while processing your request: (%s)", strings.Join(errs, ", ")),
		Errors:  append([]string(nil), errs...),
	}
}
