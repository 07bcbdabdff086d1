package server

import (
	"errors"

	"rps-master/internal/game"
	"rps-master/internal/service"

	"connectrpc.com/connect"
)

func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch {
	case errors.Is(err, service.ErrPlayerNotFound), errors.Is(err, game.ErrUnknownCosmetic):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, game.ErrInvalidMove), errors.Is(err, service.ErrInvalidName), errors.Is(err, service.ErrInvalidSave):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, game.ErrAlreadyUnlocked):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrNotForSale):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, game.ErrLocked):
		return connect.NewError(connect.CodePermissionDenied, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
