package config

import "errors"

var (
	// ErrPolicyNotLoaded возвращается, если политика расписания не задана
	ErrPolicyNotLoaded = errors.New("config: schedule policy is not loaded")
)
