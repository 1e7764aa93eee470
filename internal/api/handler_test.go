package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"consolidator/internal/config"
	"consolidator/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "consolidator.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h := NewHandler(st, config.DefaultConfig())
	r := gin.New()
	apiGroup := r.Group("/api")
	h.RegisterRoutes(apiGroup)
	return r, h
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("create session: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("empty session id")
	}
	return resp.SessionID
}

// buildWorkbookBytes 构造一个两行数据的测试工作簿
func buildWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	_ = f.SetSheetRow("Sheet1", "A1", &[]string{"First Name", "E-mail", "Company"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]string{"Alice", "alice@example.com", "Acme"})
	_ = f.SetSheetRow("Sheet1", "A3", &[]string{"Bob", "bob@example.com", "Globex"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func uploadWorkbook(t *testing.T, r *gin.Engine, sessionID, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+sessionID+"/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStatusEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Connected {
		t.Errorf("connected before any test-connection call")
	}
	if resp.BatchSize != 80 || resp.SpeedMode != "balanced" {
		t.Errorf("defaults: %+v", resp)
	}
}

func TestSessionNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/sessions/no-such/headers", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUploadMappingConsolidateFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	sessionID := createSession(t, r)

	// 摄取
	w := uploadWorkbook(t, r, sessionID, "contacts.xlsx", buildWorkbookBytes(t))
	if w.Code != http.StatusOK {
		t.Fatalf("upload: %d body=%s", w.Code, w.Body.String())
	}
	var upload UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &upload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if upload.FileCount != 1 || upload.TotalRows != 2 || len(upload.Errors) != 0 {
		t.Fatalf("upload response: %+v", upload)
	}

	// 表头
	w = doJSON(t, r, http.MethodGet, "/api/sessions/"+sessionID+"/headers", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("headers: %d", w.Code)
	}

	// 模糊映射应覆盖全部三个表头
	w = doJSON(t, r, http.MethodGet, "/api/sessions/"+sessionID+"/mapping", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("mapping: %d", w.Code)
	}
	var mapping struct {
		Mapped   int `json:"mapped"`
		Unmapped int `json:"unmapped"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &mapping); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mapping.Mapped != 3 || mapping.Unmapped != 0 {
		t.Fatalf("mapping counts: %+v", mapping)
	}

	// 合并
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/consolidate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("consolidate: %d body=%s", w.Code, w.Body.String())
	}

	// 预览
	w = doJSON(t, r, http.MethodGet, "/api/sessions/"+sessionID+"/preview?limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: %d", w.Code)
	}
	var preview struct {
		Rows  []map[string]string `json:"rows"`
		Total int                 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if preview.Total != 2 || len(preview.Rows) != 2 {
		t.Fatalf("preview: %+v", preview)
	}
	if preview.Rows[0]["first_name"] != "Alice" || preview.Rows[0]["email"] != "alice@example.com" {
		t.Fatalf("row 0: %+v", preview.Rows[0])
	}
	if preview.Rows[0]["source_file"] != "contacts.xlsx" {
		t.Fatalf("provenance: %+v", preview.Rows[0])
	}

	// 批次规划
	w = doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/batches", map[string]any{"batchSize": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("plan: %d body=%s", w.Code, w.Body.String())
	}
	var plan struct {
		Batches []struct {
			Number int    `json:"number"`
			Status string `json:"status"`
		} `json:"batches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(plan.Batches) != 2 || plan.Batches[0].Status != "pending" {
		t.Fatalf("plan: %+v", plan)
	}

	// 文件下载
	w = doJSON(t, r, http.MethodGet, "/api/sessions/"+sessionID+"/export?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Fatalf("missing content-disposition")
	}
}

func TestOverrideRejectsUnknownTarget(t *testing.T) {
	r, _ := newTestRouter(t)
	sessionID := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/mapping/override",
		map[string]any{"raw": "Name", "canonical": "not_a_real_column"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestConsolidateWithoutFiles(t *testing.T) {
	r, _ := newTestRouter(t)
	sessionID := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/consolidate", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestBatchExportRequiresConnection(t *testing.T) {
	r, _ := newTestRouter(t)
	sessionID := createSession(t, r)

	uploadWorkbook(t, r, sessionID, "contacts.xlsx", buildWorkbookBytes(t))
	doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/consolidate", nil)
	doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/batches", nil)

	w := doJSON(t, r, http.MethodPost, "/api/sessions/"+sessionID+"/batches/1/export", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateConnection(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/connection", map[string]any{
		"baseUrl":   "http://baserow.internal:8080",
		"apiToken":  "secret",
		"tableId":   "698",
		"speedMode": "turbo",
		"batchSize": 40,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: %d body=%s", w.Code, w.Body.String())
	}
	var resp ConnectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.HasToken || resp.TableID != "698" || resp.SpeedMode != "turbo" || resp.BatchSize != 40 {
		t.Fatalf("connection: %+v", resp)
	}
	if resp.Connected {
		t.Fatalf("patch must not mark connected")
	}

	// 令牌不得出现在任何响应里
	if bytes.Contains(w.Body.Bytes(), []byte("secret")) {
		t.Fatalf("token leaked in response: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, "/api/connection", map[string]any{"speedMode": "warp"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad speed mode: %d", w.Code)
	}
}
