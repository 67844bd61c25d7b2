package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
	"github.com/comercia/comercia-api/pkg/config"
	"github.com/comercia/comercia-api/pkg/jwt"
)

func validRole(r string) bool {
	switch r {
	case entity.RoleAdmin, entity.RoleVendedor, entity.RoleDeposito, entity.RoleComex:
		return true
	}
	return false
}

// UseCase registro, login y consulta de sesión. Las contraseñas se guardan
// con bcrypt; el token es un JWT firmado con HS256.
type UseCase struct {
	repo   repository.UserRepository
	jwtCfg config.JWTConfig
}

func NewUseCase(repo repository.UserRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{repo: repo, jwtCfg: jwtCfg}
}

// Register da de alta un usuario. El rol por defecto es vendedor.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput("email y contraseña son obligatorios")
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput("la contraseña debe tener al menos 8 caracteres")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if !validRole(role) {
		return nil, domain.ErrInvalidInput("rol inválido: " + role)
	}
	existing, err := uc.repo.FindByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate("ya existe un usuario con ese email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return toUserResponse(user), nil
}

// Login valida credenciales y devuelve token + perfil. Credenciales malas y
// usuario inexistente responden lo mismo: no se filtra cuál falló.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput("email y contraseña son obligatorios")
	}
	user, err := uc.repo.FindByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized("credenciales inválidas")
	}
	if user.Status != "active" {
		return nil, domain.ErrUnauthorized("usuario inactivo")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized("credenciales inválidas")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, domain.ErrPersistence(err)
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Session resuelve el estado de sesión explícito que consume el front:
// anonymous sin token, authenticated con perfil, error si el token vino pero
// no sirve (vencido, firma inválida, usuario borrado).
func (uc *UseCase) Session(tokenString string) *dto.SessionResponse {
	if tokenString == "" {
		return &dto.SessionResponse{State: dto.SessionAnonymous}
	}
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return &dto.SessionResponse{State: dto.SessionError, Reason: "token inválido o vencido"}
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return &dto.SessionResponse{State: dto.SessionError, Reason: "no se pudo cargar el perfil"}
	}
	if user == nil {
		return &dto.SessionResponse{State: dto.SessionError, Reason: "el usuario del token ya no existe"}
	}
	return &dto.SessionResponse{
		State:   dto.SessionAuthenticated,
		Profile: toUserResponse(user),
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
