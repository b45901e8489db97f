package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fupdash/backend/internal/clock"
	"github.com/fupdash/backend/internal/db"
	"github.com/fupdash/backend/internal/export"
	"github.com/fupdash/backend/internal/service"
)

var handlerNow = time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)

const fupCSV = "PO SAP,ARRIVAL VESSEL,BL/AWB,STATUS,ACTUAL ETA,FREE TIME DEADLINE,FCL,LCL\n" +
	"4500012345,MSC ANNA,BL2,In transit,2023-01-01,2023-01-14,2,\n" +
	",MSC ANNA,BL1,Delivered,2023-01-01,2023-01-05,1,1\n"

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *db.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := db.NewMemoryStore(0)
	h := &Handler{
		Reports: &service.ReportService{
			Store:  store,
			Clock:  clock.FixedClock{At: handlerNow},
			Logger: zerolog.Nop(),
		},
		Store:           store,
		Validator:       validator.New(),
		Logger:          zerolog.Nop(),
		DefaultLanguage: "en",
		RequestTimeout:  5 * time.Second,
	}

	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.POST("/api/datasets", h.UploadDataset)
	r.GET("/api/datasets/latest", h.LatestDataset)
	r.GET("/api/datasets/:id", h.GetDataset)
	r.DELETE("/api/datasets/:id", h.DeleteDataset)
	r.POST("/api/datasets/:id/view", h.View)
	r.POST("/api/datasets/:id/export", h.Export)
	return r, store
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func upload(t *testing.T, r *gin.Engine) service.DatasetSummary {
	t.Helper()
	w := serve(r, uploadRequest(t, "fup.csv", fupCSV))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var summary service.DatasetSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	return summary
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadDataset(t *testing.T) {
	r, _ := newTestRouter(t)
	summary := upload(t, r)

	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, "fup.csv", summary.Filename)
	assert.Equal(t, 2, summary.Rows)
	assert.Equal(t, 4, summary.TotalContainers)
	assert.Equal(t, []string{"Delivered", "In transit"}, summary.Facets.Statuses)
	assert.True(t, summary.UploadedAt.Equal(handlerNow))
}

func TestUploadDatasetRejectsBadInput(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", nil)
	w := serve(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, uploadRequest(t, "fup.txt", fupCSV))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, uploadRequest(t, "fup.csv", "PO SAP,STATUS\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SHEET_EMPTY", body.Error.Code)
}

func TestUploadWorkbookWithoutSheet(t *testing.T) {
	r, _ := newTestRouter(t)

	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	w := serve(r, uploadRequest(t, "fup.xlsx", buf.String()))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SHEET_NOT_FOUND", body.Error.Code)
}

func TestLatestAndGetDataset(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/datasets/latest", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	summary := upload(t, r)
	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/datasets/latest", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var latest service.DatasetSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	assert.Equal(t, summary.ID, latest.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/datasets/"+summary.ID+"?lang=pt", nil)
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	var got service.DatasetSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got.Facets.POs, "Sem PO")
}

func TestViewByPO(t *testing.T) {
	r, _ := newTestRouter(t)
	upload(t, r)

	w := serve(r, jsonRequest(http.MethodPost, "/api/datasets/latest/view", `{"view":"po"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, service.ViewPO, res.View)
	assert.Equal(t, 4, res.TotalContainers)
	require.Len(t, res.Groups, 2)
	assert.Equal(t, "4500012345", res.Groups[0].Name)
	assert.Equal(t, "No PO", res.Groups[1].Name)
	assert.True(t, res.GeneratedAt.Equal(handlerNow))
}

func TestViewEmptyBodyDefaultsToVessel(t *testing.T) {
	r, _ := newTestRouter(t)
	upload(t, r)

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/latest/view", nil)
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, service.ViewVessel, res.View)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "MSC ANNA", res.Groups[0].Name)
	require.Len(t, res.Groups[0].Shipments, 2)
	require.NotNil(t, res.Groups[0].Shipments[0].DaysToDeadline)
	assert.Equal(t, 4, *res.Groups[0].Shipments[0].DaysToDeadline)
}

func TestViewFiltersAndAsOf(t *testing.T) {
	r, _ := newTestRouter(t)
	upload(t, r)

	body := `{"view":"vessel","statuses":["In transit"],"as_of":"2023-01-12","sort":"BL/AWB","direction":"desc"}`
	w := serve(r, jsonRequest(http.MethodPost, "/api/datasets/latest/view", body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Filtered, 1)
	assert.Equal(t, "BL2", res.Filtered[0].BL)
	require.Len(t, res.Groups, 1)
	require.NotNil(t, res.Groups[0].Shipments[0].DaysToDeadline)
	assert.Equal(t, 2, *res.Groups[0].Shipments[0].DaysToDeadline)
}

func TestViewValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	upload(t, r)

	cases := []struct {
		name string
		body string
		code string
	}{
		{"unknown view", `{"view":"map"}`, "VALIDATION_ERROR"},
		{"bad direction", `{"direction":"up"}`, "VALIDATION_ERROR"},
		{"bad date", `{"arrival_from":"01/02/2023"}`, "VALIDATION_ERROR"},
		{"unknown sort", `{"sort":"colour"}`, "VALIDATION_ERROR"},
		{"bad as_of", `{"as_of":"yesterday"}`, "VALIDATION_ERROR"},
		{"malformed", `{"view":`, "INVALID_REQUEST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, jsonRequest(http.MethodPost, "/api/datasets/latest/view", tc.body))
			require.Equal(t, http.StatusBadRequest, w.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
		})
	}
}

func TestViewUnknownDataset(t *testing.T) {
	r, _ := newTestRouter(t)
	w := serve(r, jsonRequest(http.MethodPost, "/api/datasets/missing/view", `{}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport(t *testing.T) {
	r, _ := newTestRouter(t)
	upload(t, r)

	w := serve(r, jsonRequest(http.MethodPost, "/api/datasets/latest/export", `{"view":"detailed"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "dashboard_export_2023-01-10.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetDetailed}, f.GetSheetList())
}

func TestDeleteDataset(t *testing.T) {
	r, _ := newTestRouter(t)
	summary := upload(t, r)

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/datasets/"+summary.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/datasets/"+summary.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/api/datasets/"+summary.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
