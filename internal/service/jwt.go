package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/pkg/config"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type Claims struct {
	UserId  int64 `json:"user_id"`
	Version uint  `json:"version"`
	jwt.RegisteredClaims
}

// JWTService is the session resolver boundary: account provisioning and
// login live in the auth service, this side only validates tokens it is
// handed and looks the user up.
type JWTServiceI interface {
	GenerateToken(user *user.User, isAccess bool) (string, error)
	ValidateToken(ctx context.Context, token string) (*user.User, error)
}

type JWTService struct {
	appConfig *config.Config
	userRepo  repository.UserRepositoryI
}

func NewJWTService(appConfig *config.Config, userRepo repository.UserRepositoryI) JWTServiceI {
	return &JWTService{
		appConfig: appConfig,
		userRepo:  userRepo,
	}
}

func (jwtService *JWTService) GenerateToken(user *user.User, isAccess bool) (string, error) {
	expireTime := time.Now().Add(1 * time.Hour)
	if !isAccess {
		expireTime = time.Now().AddDate(0, 1, 0)
	}
	claims := Claims{
		UserId:  user.Id,
		Version: user.JWTVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireTime),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(jwtService.appConfig.SecretKey))
	if err != nil {
		return "", customerror.NewError("JWTService.GenerateToken", jwtService.appConfig.WebHost+":"+jwtService.appConfig.WebPort, err.Error())
	}

	return tokenString, nil
}

func (jwtService *JWTService) ValidateToken(ctx context.Context, token string) (*user.User, error) {
	tokenClaims := &Claims{}
	_, err := jwt.ParseWithClaims(token, tokenClaims, func(t *jwt.Token) (interface{}, error) {
		return []byte(jwtService.appConfig.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
		return nil, customerror.ErrJwtInvalid
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	user, err := jwtService.userRepo.GetUser(ctx, tokenClaims.UserId)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customErr := err.(customerror.CustomError)
		customErr.AppendModule("JWTService.ValidateToken")
		return nil, customErr
	}
	if user.JWTVersion != tokenClaims.Version {
		return nil, customerror.ErrJwtVersionIncorrect
	}
	return user, nil
}
