package bus

import "github.com/pkg/errors"

var (
	ErrChannelExists   = errors.New("channel already exists")
	ErrChannelNotFound = errors.New("channel does not exist")
)
