package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/estoquepro/estoque-api/internal/application/auth"
	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// fakeUserRepo guarda usuarios en un mapa, indexados por id y por email.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) TouchLastSignedIn(_ context.Context, id string) error {
	if u, ok := r.users[id]; ok {
		u.LastSignedIn = u.UpdatedAt
	}
	return nil
}

func newAuthUseCase(repo *fakeUserRepo) *auth.UseCase {
	return auth.NewUseCase(repo, auth.JWTConfig{Secret: "clave-de-prueba", ExpMinutes: 60, Issuer: "estoque-api"})
}

func TestRegister_RolPorDefectoEsVisualizacao(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "nuevo@acme.com",
		Password: "secreto123",
		Name:     "Nuevo",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVisualizacao, out.Role, "sin rol explícito debe asignarse VISUALIZACAO")
}

func TestRegister_ActorSinPermisoNoPuedeAsignarRoles(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	// Registro anónimo (ruta pública): no hay actor autenticado.
	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "intruso@acme.com",
		Password: "secreto123",
		Role:     entity.RoleAdmin,
	}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden, "un anónimo no puede auto-asignarse ADMIN")
	assert.Empty(t, repo.users, "no debe persistirse ningún usuario")

	// Un rol sin MANAGE_USERS tampoco puede escalar privilegios.
	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "operador@acme.com",
		Password: "secreto123",
		Role:     entity.RoleEstoque,
	}, entity.RoleEstoque)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_AdminPuedeAsignarCualquierRol(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "operador@acme.com",
		Password: "secreto123",
		Name:     "Operador",
		Role:     entity.RoleEstoque,
	}, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEstoque, out.Role)
}

func TestRegister_RolVisualizacaoExplicitoNoRequierePermiso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "lector@acme.com",
		Password: "secreto123",
		Role:     entity.RoleVisualizacao,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVisualizacao, out.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	in := dto.RegisterRequest{Email: "dup@acme.com", Password: "secreto123"}
	_, err := uc.Register(context.Background(), in, "")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), in, "")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesYEstado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUseCase(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID:           "u1",
		Email:        "activo@acme.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       "active",
	}))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "activo@acme.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "activo@acme.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
