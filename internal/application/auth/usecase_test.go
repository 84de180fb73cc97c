package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/sticker-orders/internal/application/auth"
	"github.com/tu-usuario/sticker-orders/internal/application/dto"
	"github.com/tu-usuario/sticker-orders/internal/domain"
	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/sticker-orders/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

const testSecret = "auth-test-secret"

func newUseCase() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "sticker-orders-test",
	})
	return uc, repo
}

func TestRegister_CreaUsuarioConSesionIniciada(t *testing.T) {
	uc, repo := newUseCase()

	out, err := uc.Register(dto.RegisterRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secreta123", Role: entity.RoleSales,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token, "registrar devuelve sesión iniciada, como el login")
	assert.Equal(t, entity.RoleSales, out.User.Role)

	// El token debe portar el id y el rol del usuario recién creado.
	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleSales, role)

	// El password se guarda hasheado, nunca en claro.
	stored := repo.users[out.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestRegister_RolPorDefectoEsUser(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Register(dto.RegisterRequest{Email: "x@example.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.User.Role)
	assert.Equal(t, "x@example.com", out.User.Name, "sin nombre se usa el email")
}

func TestRegister_RolInvalido_Rechaza(t *testing.T) {
	uc, repo := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "x@example.com", Password: "secreta123", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.users)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "otraclave99"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
