package cv_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/UrielYanez/ms-users/internal/bootstrap"
	"github.com/UrielYanez/ms-users/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func createProfile(t *testing.T, router *gin.Engine, authID int64) {
	t.Helper()

	body := map[string]any{
		"id_userauth":   authID,
		"salario":       25000,
		"id_area":       1,
		"codigo_postal": "37600",
		"estado":        "Guanajuato",
		"municipio":     "San Felipe",
		"colonia":       "Centro",
	}
	raw, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestPutThenGetCV(t *testing.T) {
	router := newTestRouter(t)
	createProfile(t, router, 3)

	payload := `{
		"experienciaLaboral": [{"empresa": "Acme", "cargo": "Dev", "descripcion": "x"}],
		"educacion": [],
		"cursos": [],
		"habilidades": [{"id_habilidad": 3}],
		"idiomas": []
	}`

	putReq := httptest.NewRequest(http.MethodPut, "/api/usuarios/3/cv", strings.NewReader(payload))
	putReq.Header.Set("Content-Type", "application/json")
	putResp := httptest.NewRecorder()
	router.ServeHTTP(putResp, putReq)

	if putResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", putResp.Code, putResp.Body.String())
	}
	var putBody struct {
		Message   string `json:"message"`
		IDUsuario int64  `json:"id_usuario"`
	}
	if err := json.NewDecoder(putResp.Body).Decode(&putBody); err != nil {
		t.Fatalf("decode put response: %v", err)
	}
	if putBody.IDUsuario <= 0 {
		t.Fatalf("expected internal profile id, got %d", putBody.IDUsuario)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/usuarios/3/cv", nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)

	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", getResp.Code, getResp.Body.String())
	}
	var doc struct {
		IDUsuario          int64            `json:"id_usuario"`
		ExperienciaLaboral []map[string]any `json:"experienciaLaboral"`
		Educacion          []map[string]any `json:"educacion"`
		Habilidades        []map[string]any `json:"habilidades"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode cv: %v", err)
	}
	if len(doc.ExperienciaLaboral) != 1 || doc.ExperienciaLaboral[0]["empresa"] != "Acme" {
		t.Fatalf("unexpected experience: %+v", doc.ExperienciaLaboral)
	}
	if len(doc.Educacion) != 0 {
		t.Fatalf("expected no education, got %+v", doc.Educacion)
	}
	if len(doc.Habilidades) != 1 {
		t.Fatalf("expected one skill, got %+v", doc.Habilidades)
	}
}

func TestPutCVUnprovisionedIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/usuarios/42/cv", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "create one first") {
		t.Fatalf("expected provisioning hint, got %s", resp.Body.String())
	}
}

func TestPutCVInvalidID(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/usuarios/abc/cv", "/api/usuarios/-1/cv", "/api/usuarios/0/cv"} {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, resp.Code)
		}
	}
}

func TestExportCVPDF(t *testing.T) {
	router := newTestRouter(t)
	createProfile(t, router, 3)

	req := httptest.NewRequest(http.MethodGet, "/api/usuarios/3/cv/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="cv.pdf"` {
		t.Fatalf("unexpected content disposition: %s", cd)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF body")
	}
}

func TestExportCVPDFUnprovisionedIdentity(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/usuarios/42/cv/pdf", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
