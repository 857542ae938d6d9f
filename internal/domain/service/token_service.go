package service

import (
	"time"

	"tamilsociety/internal/domain/entity"
)

type TokenIssuer interface {
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)
}
