package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, res *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var body ProblemDetails
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestWriteDevIncludesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/batches/trainer/x", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, "https://example.com/problem", "bad request", errors.New("boom"), "development")

	require.Equal(t, "application/problem+json", res.Header().Get("Content-Type"))
	body := decode(t, res)
	require.Equal(t, "boom", body.Detail)
	require.Equal(t, "/batches/trainer/x", body.Instance)
	require.Equal(t, http.StatusBadRequest, body.Status)
}

func TestWriteProdSanitizesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/batches", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusInternalServerError, "about:blank", "server error", errors.New("dial tcp 10.0.0.1:5432"), "production")

	body := decode(t, res)
	require.Equal(t, http.StatusText(http.StatusInternalServerError), body.Detail)
}

func TestWriteFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/batches", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, "about:blank", "invalid batch", errors.New("invalid trainerId"), "test",
		WithFieldError("trainerId", "must be greater than 0"),
		WithFieldError("", "ignored"),
	)

	body := decode(t, res)
	require.Equal(t, map[string]string{"trainerId": "must be greater than 0"}, body.Errors)
}

func TestWriteLogsAtStatusLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	req := httptest.NewRequest(http.MethodDelete, "/batches/3", nil)
	req = req.WithContext(logger.WithContext(req.Context()))

	Write(httptest.NewRecorder(), req, http.StatusNotFound, "about:blank", "batch not found", errors.New("missing"), "test")
	require.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	Write(httptest.NewRecorder(), req, http.StatusInternalServerError, "about:blank", "store failure", errors.New("down"), "test")
	require.Contains(t, buf.String(), `"level":"error"`)
}
