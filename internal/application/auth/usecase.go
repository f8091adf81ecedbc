package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/jwt"
	"github.com/jhoicas/crm-api/pkg/password"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: registro, login y lectura del token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un vendedor con password hasheado. Conflict si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("User already exist")
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// carrera entre GetByEmail y Create: el índice único decide
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict("User already exist")
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password y firma un token con {id, email, name, lastName}.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.Error{Kind: domain.ErrUserNotFound, Message: "User not exist"}
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		return nil, &domain.Error{Kind: domain.ErrPasswordIncorrect, Message: "Password incorrect"}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		LastName: user.LastName,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// Verify valida un token y devuelve la identidad que transporta.
func (uc *AuthUseCase) Verify(token string) (Identity, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return Identity{}, &domain.Error{Kind: domain.ErrInvalidToken, Message: "Invalid or expired token", Cause: err}
	}
	return id, nil
}

// UserFromToken decodifica el token recibido como argumento (getUser).
// Si el usuario sigue en la base se completa con createdAt; si no, se devuelven los claims.
func (uc *AuthUseCase) UserFromToken(ctx context.Context, token string) (*dto.UserResponse, error) {
	id, err := uc.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, id.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &dto.UserResponse{ID: id.ID, Email: id.Email, Name: id.Name, LastName: id.LastName}, nil
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
