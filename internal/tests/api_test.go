// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eterials/menu-backend/internal/config"
	"github.com/eterials/menu-backend/internal/database"
	"github.com/eterials/menu-backend/internal/models"
	"github.com/eterials/menu-backend/internal/router"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	engine *gin.Engine
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{
		Environment: "test",
		Session:     config.SessionConfig{TimeoutMinutes: 10},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  1,
			StaffUser: "staff",
		},
		Upload: config.UploadConfig{
			Dir:        s.T().TempDir(),
			MaxSizeMB:  5,
			PublicPath: "/uploads",
		},
		Public: config.PublicConfig{BaseURL: "http://localhost:8080"},
	}

	s.Require().NoError(database.RunMigrations(db))
	s.Require().NoError(database.SeedInitialData(db, cfg.Session))

	s.db = db
	s.engine = router.Setup(db, cfg)
}

func (s *APITestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func (s *APITestSuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	payload := s.decode(w)
	data, ok := payload["data"].(map[string]interface{})
	s.Require().True(ok, "expected data object, got %v", payload)
	return data
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

// Scenario: admin creates a category and a product; chatbot sees them.
func (s *APITestSuite) TestCreateCategoryAndProduct() {
	w := s.request(http.MethodPost, "/menu-admin/api/categorias", gin.H{"nombre": "Bebidas"})
	s.Require().Equal(http.StatusCreated, w.Code)
	category := s.data(w)
	s.Equal("🍷", category["icono"])
	s.Equal("BEBI", category["codigo"])

	w = s.request(http.MethodPost, "/menu-admin/api/productos", gin.H{
		"nombre":       "Limonada de coco",
		"precio":       "9.50",
		"categoria_id": category["id"],
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	product := s.data(w)
	s.Equal("Limonada de coco", product["nombre"])
	s.Equal(9.5, product["precio"])
	s.Equal("Bebidas", product["categoria_nombre"])
	s.Equal(true, product["disponible"])
}

// Scenario: two products with names differing only in case and spaces
// collide; the first wins and the response names it.
func (s *APITestSuite) TestDuplicateProductNameConflict() {
	w := s.request(http.MethodPost, "/menu-admin/api/productos", gin.H{
		"nombre": "Limonada", "precio": 8,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/menu-admin/api/productos", gin.H{
		"nombre": "  LIMONADA ", "precio": 10,
	})
	s.Require().Equal(http.StatusConflict, w.Code)

	payload := s.decode(w)
	details, ok := payload["detalles"].(map[string]interface{})
	s.Require().True(ok)
	existing, ok := details["producto_existente"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal("Limonada", existing["nombre"])
}

func (s *APITestSuite) TestProductPriceValidation() {
	w := s.request(http.MethodPost, "/menu-admin/api/productos", gin.H{
		"nombre": "Agua", "precio": 0,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/menu-admin/api/productos", gin.H{
		"nombre": "   ", "precio": 5,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

// Scenario: deleting a category with dependents is refused with counts;
// forzar=true cascades and detaches products.
func (s *APITestSuite) TestCategoryDeleteStrictAndForced() {
	w := s.request(http.MethodPost, "/menu-admin/api/categorias", gin.H{"nombre": "Comidas"})
	s.Require().Equal(http.StatusCreated, w.Code)
	categoryID := s.data(w)["id"]

	w = s.request(http.MethodPost, "/menu-admin/api/subcategorias", gin.H{
		"nombre": "Sopas", "categoria_id": categoryID,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/menu-admin/api/productos", gin.H{
		"nombre": "Ajiaco", "precio": 18, "categoria_id": categoryID,
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	productID := s.data(w)["id"]

	path := fmt.Sprintf("/menu-admin/api/categorias/%v", categoryID)
	w = s.request(http.MethodDelete, path, nil)
	s.Require().Equal(http.StatusConflict, w.Code)

	payload := s.decode(w)
	details, ok := payload["detalles"].(map[string]interface{})
	s.Require().True(ok)
	s.EqualValues(1, details["productos"])
	s.EqualValues(1, details["subcategorias"])

	w = s.request(http.MethodDelete, path+"?forzar=true", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	// Product survives uncategorized.
	w = s.request(http.MethodGet, fmt.Sprintf("/menu-admin/api/productos/%v", productID), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	product := s.data(w)
	s.Nil(product["categoria_id"])
}

// Scenario: session lifecycle end to end.
func (s *APITestSuite) TestSessionLifecycle() {
	w := s.request(http.MethodPost, "/api/chatbot/sesion/iniciar", gin.H{"mesa": "5"})
	s.Require().Equal(http.StatusCreated, w.Code)
	first := s.data(w)
	s.Equal(false, first["sesion_reutilizada"])
	s.NotEmpty(first["saludo"])
	sessionID := first["sesion_id"]

	// Re-entry on the same table reuses the session.
	w = s.request(http.MethodPost, "/api/chatbot/sesion/iniciar", gin.H{"mesa": "5"})
	s.Require().Equal(http.StatusOK, w.Code)
	second := s.data(w)
	s.Equal(true, second["sesion_reutilizada"])
	s.Equal(sessionID, second["sesion_id"])

	base := fmt.Sprintf("/api/chatbot/sesion/%v", sessionID)

	w = s.request(http.MethodGet, base+"/validar", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(true, s.data(w)["valida"])

	w = s.request(http.MethodPost, base+"/actividad", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, base+"/cerrar", nil)
	s.Equal(http.StatusOK, w.Code)

	// Heartbeat on the closed session conflicts.
	w = s.request(http.MethodPost, base+"/actividad", nil)
	s.Equal(http.StatusConflict, w.Code)
}

// Scenario: rating upsert through the wire.
func (s *APITestSuite) TestRatingUpsert() {
	w := s.request(http.MethodPost, "/api/chatbot/sesion/iniciar", gin.H{"mesa": "3"})
	s.Require().Equal(http.StatusCreated, w.Code)
	sessionID := s.data(w)["sesion_id"]

	w = s.request(http.MethodPost, "/api/chatbot/calificacion", gin.H{
		"sesion_id": sessionID, "estrellas": 3, "categoria": "comida",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, "/api/chatbot/calificacion", gin.H{
		"sesion_id": sessionID, "estrellas": 5, "categoria": "comida",
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	var count int64
	s.db.Model(&models.Rating{}).Count(&count)
	s.EqualValues(1, count)

	var rating models.Rating
	s.Require().NoError(s.db.First(&rating).Error)
	s.Equal(5, rating.Stars)

	// Out-of-range stars rejected.
	w = s.request(http.MethodPost, "/api/chatbot/calificacion", gin.H{
		"sesion_id": sessionID, "estrellas": 6,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

// Scenario: staff notification resolve requires auth and is one-way.
func (s *APITestSuite) TestNotificationResolveRequiresAuthAndIsOneWay() {
	w := s.request(http.MethodPost, "/api/chatbot/sesion/iniciar", gin.H{"mesa": "2"})
	s.Require().Equal(http.StatusCreated, w.Code)
	sessionID := s.data(w)["sesion_id"]

	w = s.request(http.MethodPost, "/api/chatbot/notificacion/mesero", gin.H{
		"sesion_id": sessionID, "tipo_notificacion": "llamar_mesero",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	notificationID := s.data(w)["id"]

	resolvePath := fmt.Sprintf("/api/chatbot/notificaciones/%v/atender", notificationID)

	// Without a token the resolve is rejected.
	w = s.request(http.MethodPut, resolvePath, nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	token := s.staffToken()

	w = s.authedRequest(http.MethodPut, resolvePath, nil, token)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.authedRequest(http.MethodPut, resolvePath, nil, token)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestGreetingEndpoint() {
	w := s.request(http.MethodGet, "/api/chatbot/saludo", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotEmpty(s.data(w)["saludo"])
}

func (s *APITestSuite) TestTableQR() {
	w := s.request(http.MethodGet, "/menu-admin/api/qr/mesa/7", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))
	s.NotEmpty(w.Body.Bytes())
}

func (s *APITestSuite) TestPreviewIcon() {
	w := s.request(http.MethodPost, "/menu-admin/api/categorias/previsualizar-icono", gin.H{
		"nombre": "Cervezas Artesanales",
	})
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.data(w)
	s.Equal("🍺", data["icono"])
	s.Equal("CEAR", data["codigo"])
}

func (s *APITestSuite) staffToken() string {
	token, err := generateTestToken("staff", "test-secret")
	require.NoError(s.T(), err)
	return token
}

func (s *APITestSuite) authedRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}
