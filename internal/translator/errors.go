package translator

import "errors"

var (
	// ErrQuotaExceeded means the provider answered with its daily quota
	// notice instead of a translation.
	ErrQuotaExceeded = errors.New("translation quota exceeded")
	// ErrEmptyTranslation means the provider answered without a translation.
	ErrEmptyTranslation = errors.New("empty translation")
	// ErrUnsupportedLanguage is returned for language codes outside Languages.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrSwitchInProgress is returned when a language switch is already running.
	ErrSwitchInProgress = errors.New("language switch already in progress")
	// ErrProviderNotRegistered is returned by Registry.Get for unknown names.
	ErrProviderNotRegistered = errors.New("translation provider not registered")
)
