package biz

import (
	"github.com/go-kratos/kratos/v2/errors"
)

// 对外可见的错误原因
const (
	ReasonSessionNotFound = "SESSION_NOT_FOUND"
	ReasonGameNotFound    = "GAME_NOT_FOUND"
	ReasonInvalidArgument = "INVALID_ARGUMENT"
)

func errSessionNotFound(id string) error {
	return errors.NotFound(ReasonSessionNotFound, "session not found").
		WithMetadata(map[string]string{"session_id": id})
}

func errGameNotFound(gameID int64) error {
	return errors.Newf(404, ReasonGameNotFound, "game %d not found", gameID)
}

func errInvalidArgument(format string, a ...any) error {
	return errors.Newf(400, ReasonInvalidArgument, format, a...)
}
