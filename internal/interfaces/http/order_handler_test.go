package http_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/sticker-orders/internal/application/orders"
	"github.com/tu-usuario/sticker-orders/internal/domain/entity"
	"github.com/tu-usuario/sticker-orders/internal/domain/repository"
	apphttp "github.com/tu-usuario/sticker-orders/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el handler de órdenes
// ──────────────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	ordenes []*entity.Order
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	r.ordenes = append(r.ordenes, o)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range r.ordenes {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) ListByUser(userID string) ([]*entity.Order, error) { return nil, nil }
func (r *memOrderRepo) ListAll() ([]*entity.Order, error)                 { return nil, nil }
func (r *memOrderRepo) ListCustomInStatuses([]entity.OrderStatus) ([]*entity.Order, error) {
	return nil, nil
}
func (r *memOrderRepo) SetReview(string, repository.ReviewPatch) (bool, error) { return false, nil }
func (r *memOrderRepo) Transition(string, entity.OrderStatus, entity.OrderStatus) (bool, error) {
	return false, nil
}

type stubProductRepo struct{}

func (stubProductRepo) Create(*entity.Product) error                             { return nil }
func (stubProductRepo) GetByID(string) (*entity.Product, error)                  { return nil, nil }
func (stubProductRepo) GetByOwnerAndSKU(string, string) (*entity.Product, error) { return nil, nil }
func (stubProductRepo) Update(*entity.Product) error                             { return nil }
func (stubProductRepo) Delete(string) error                                      { return nil }
func (stubProductRepo) ListByOwner(string) ([]*entity.Product, error)            { return nil, nil }
func (stubProductRepo) ListAll() ([]*entity.Product, error)                      { return nil, nil }

type stubUserRepo struct{}

func (stubUserRepo) Create(*entity.User) error               { return nil }
func (stubUserRepo) GetByID(string) (*entity.User, error)    { return nil, nil }
func (stubUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }

// buildOrderApp monta la ruta de orden personalizada con el middleware real.
func buildOrderApp(repo *memOrderRepo) *fiber.App {
	uc := orders.NewOrderUseCase(repo, stubProductRepo{}, stubUserRepo{})
	handler := apphttp.NewOrderHandler(uc, nil, nil)

	app := fiber.New()
	app.Post("/api/orders/custom", apphttp.AuthMiddleware(testJWTSecret), handler.CreateCustom)
	return app
}

// postCustomForm lanza un POST multipart a /api/orders/custom con los campos dados.
func postCustomForm(t *testing.T, app *fiber.App, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/custom", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests POST /api/orders/custom — validación del formulario
// ──────────────────────────────────────────────────────────────────────────────

// quantity es obligatorio: sin el campo no debe crearse ninguna orden.
func TestCreateCustom_SinQuantity_Retorna400(t *testing.T) {
	repo := &memOrderRepo{}
	app := buildOrderApp(repo)

	resp := postCustomForm(t, app, map[string]string{"name": "Gato"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"quantity ausente debe rechazarse con 400")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Empty(t, repo.ordenes, "no debe persistirse ninguna orden")
}

func TestCreateCustom_QuantityNoNumerica_Retorna400(t *testing.T) {
	repo := &memOrderRepo{}
	app := buildOrderApp(repo)

	resp := postCustomForm(t, app, map[string]string{"name": "Gato", "quantity": "tres"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.ordenes)
}

func TestCreateCustom_QuantityCero_Retorna400(t *testing.T) {
	repo := &memOrderRepo{}
	app := buildOrderApp(repo)

	resp := postCustomForm(t, app, map[string]string{"name": "Gato", "quantity": "0"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.ordenes)
}

func TestCreateCustom_ConQuantity_Crea201(t *testing.T) {
	repo := &memOrderRepo{}
	app := buildOrderApp(repo)

	resp := postCustomForm(t, app, map[string]string{
		"name":     "Gato",
		"color":    "negro",
		"quantity": "3",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.Len(t, repo.ordenes, 1)
	order := repo.ordenes[0]
	assert.Equal(t, testUserID, order.UserID)
	assert.Equal(t, entity.StatusPlaced, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	require.NotNil(t, order.Items[0].Custom)
	assert.Equal(t, "Gato", order.Items[0].Custom.Name)
	assert.True(t, order.Items[0].Custom.UnitPrice.Equal(entity.DefaultCustomUnitPrice),
		"sin unit_price debe aplicarse el precio base")
}
