package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"venditto/controllers"
	"venditto/controllers/mocks"
	"venditto/db"
	"venditto/router"
	"venditto/storage"
	"venditto/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
	"go.uber.org/mock/gomock"
)

const testBaseURL = "http://localhost:8080"

func init() {
	gin.SetMode(gin.TestMode)
	log.SetLevel(log.ErrorLevel)
}

// setupServer sobe a API completa (rotas reais) sobre um sqlite descartável,
// com provedor e notificador mockados.
func setupServer(t *testing.T, provider controllers.PaymentProvider, pixel controllers.PixelNotifier) (*gin.Engine, *storage.Gateway) {
	t.Helper()

	database, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("abrir sqlite de teste: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrar schema de teste: %v", err)
	}

	gateway := storage.New(database)
	engine := gin.New()
	router.Initialize(engine, controllers.Deps{
		Storage:  gateway,
		Provider: provider,
		Pixel:    pixel,
		BaseURL:  testBaseURL,
	})
	return engine, gateway
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("serializar body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("decodificar resposta %q: %v", w.Body.String(), err)
	}
}

// eventNamed casa um PixelEvent pelo nome do evento.
type eventNamed string

func (m eventNamed) Matches(x interface{}) bool {
	ev, ok := x.(tools.PixelEvent)
	return ok && ev.EventName == string(m)
}

func (m eventNamed) String() string {
	return "evento de pixel " + string(m)
}

// quietNotifier ignora qualquer evento; para testes que não olham o pixel.
func quietNotifier(t *testing.T, ctrl *gomock.Controller) *mocks.MockPixelNotifier {
	t.Helper()
	pixel := mocks.NewMockPixelNotifier(ctrl)
	pixel.EXPECT().Dispatch(gomock.Any()).AnyTimes()
	return pixel
}
