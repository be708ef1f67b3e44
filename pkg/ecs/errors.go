package ecs

import "github.com/pkg/errors"

var (
	ErrHandleNotFound         = errors.New("handle is not allocated")
	ErrComponentNotRegistered = errors.New("component type is not registered")
	ErrSystemMustBeSet        = errors.New("system must be set")
	ErrSystemExists           = errors.New("system is already registered")
	ErrSystemNotFound         = errors.New("system is not registered")
	ErrScheduleCycle          = errors.New("system dependencies form a cycle")
)
