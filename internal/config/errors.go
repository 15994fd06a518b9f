package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid matches every *SettingError.
	ErrInvalid = errors.New("invalid setting")

	// ErrWrongType matches a *SettingError of KindWrongType.
	ErrWrongType = errors.New("setting has the wrong type")

	// ErrNoFile is returned when an explicitly named config file is absent.
	ErrNoFile = errors.New("config file not found")
)

// Kind classifies a SettingError.
type Kind uint8

const (
	KindUnknownKey Kind = iota
	KindWrongType
	KindOutOfRange
	KindNotAllowed
)

var kindNames = [...]string{
	KindUnknownKey: "unknown_key",
	KindWrongType:  "wrong_type",
	KindOutOfRange: "out_of_range",
	KindNotAllowed: "not_allowed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// SettingError reports a setting that could not be accepted. Key is the
// dotted setting name, or a comma separated list for unknown keys.
type SettingError struct {
	Key    string
	Reason string
	Value  any
	Kind   Kind
}

func (e *SettingError) Error() string {
	msg := e.Reason
	if e.Key != "" {
		msg = e.Key + ": " + msg
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (got %v)", e.Value)
	}
	return msg
}

func (e *SettingError) Is(target error) bool {
	switch target {
	case ErrInvalid:
		return true
	case ErrWrongType:
		return e.Kind == KindWrongType
	}
	return false
}
