package auth

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mashop-api/internal/application/dto"
	"github.com/jhoicas/mashop-api/internal/application/usecase"
	"github.com/jhoicas/mashop-api/internal/domain"
	"github.com/jhoicas/mashop-api/internal/domain/entity"
	"github.com/jhoicas/mashop-api/internal/domain/repository"
	"github.com/jhoicas/mashop-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// DefaultAvatarBaseURL servicio de avatares derivados del username.
const DefaultAvatarBaseURL = "https://dummyjson.com/icon"

// AuthUseCase es el store de identidades: CRUD de usuarios más la verificación de
// credenciales local. La unicidad del username se exige solo en la creación; un
// update que cambie el username no la re-verifica (comportamiento documentado).
type AuthUseCase struct {
	store    repository.DocumentStore
	activity *usecase.ActivityLog
	jwtCfg   JWTConfig

	avatarBase string

	// Serializa los read-modify-write sobre la lista de usuarios.
	mu sync.Mutex
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(store repository.DocumentStore, activity *usecase.ActivityLog, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		store:      store,
		activity:   activity,
		jwtCfg:     jwtCfg,
		avatarBase: DefaultAvatarBaseURL,
	}
}

// AvatarURL deriva la URL del avatar a partir del username.
func (uc *AuthUseCase) AvatarURL(username string) string {
	if username == "" {
		return uc.avatarBase + "/default/128"
	}
	return uc.avatarBase + "/" + url.PathEscape(username) + "/128"
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Username repetido => ErrDuplicateUsername; username o password vacíos => ErrValidation.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == in.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	user := entity.User{
		ID:           "u-" + uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		Avatar:       uc.AvatarURL(in.Username),
		CreatedAt:    time.Now().UTC(),
	}
	users = append(users, user)
	if err := uc.store.Set(ctx, repository.KeyUsers, users); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, in.Username, entity.ActivityUserCreated,
		"User "+in.Username+" created", map[string]any{"role": role})
	return dto.FromUser(&user), nil
}

// List devuelve todos los usuarios, saneados.
func (uc *AuthUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.FromUser(&users[i]))
	}
	return out, nil
}

// Update aplica el parche al usuario. Cambiar el username regenera el avatar
// derivado; un password presente se re-hashea. Id desconocido => ErrNotFound.
func (uc *AuthUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	patch := in.ToPatch()
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			users[i].PasswordHash = string(hash)
		}
		users[i].Apply(patch)
		if patch.Username != nil {
			users[i].Avatar = uc.AvatarURL(users[i].Username)
		}
		users[i].UpdatedAt = time.Now().UTC()
		if err := uc.store.Set(ctx, repository.KeyUsers, users); err != nil {
			return nil, err
		}
		uc.activity.Record(ctx, users[i].Username, entity.ActivityUserUpdated,
			"User "+users[i].Username+" updated", map[string]any{"id": id})
		return dto.FromUser(&users[i]), nil
	}
	return nil, domain.ErrNotFound
}

// Remove elimina el usuario y lo devuelve. Id desconocido => (nil, nil), sin error.
func (uc *AuthUseCase) Remove(ctx context.Context, id string) (*dto.UserResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	var removed *entity.User
	kept := make([]entity.User, 0, len(users))
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			removed = &u
			continue
		}
		kept = append(kept, users[i])
	}
	if removed == nil {
		return nil, nil
	}
	if err := uc.store.Set(ctx, repository.KeyUsers, kept); err != nil {
		return nil, err
	}
	uc.activity.Record(ctx, "system", entity.ActivityUserDeleted,
		"User "+removed.Username+" deleted", map[string]any{"id": id})
	return dto.FromUser(removed), nil
}

// Authenticate verifica username/password contra el store local. Usuario desconocido
// y password incorrecto son indistinguibles para el caller: ambos devuelven (nil, nil).
// Un login exitoso registra una entrada de actividad y devuelve el usuario saneado.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*dto.UserResponse, error) {
	users, err := uc.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(password)) != nil {
			return nil, nil
		}
		uc.activity.Record(ctx, username, entity.ActivityLogin, "User "+username+" logged in", nil)
		safe := users[i].Sanitized()
		return dto.FromUser(&safe), nil
	}
	return nil, nil
}

// Login es Authenticate más emisión del token JWT de sesión.
// Credenciales inválidas => ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *user}, nil
}

func (uc *AuthUseCase) loadUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if _, err := uc.store.Get(ctx, repository.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}
