package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     interface{}
		wantBody map[string]interface{}
	}{
		{
			name:     "ok with payload",
			code:     http.StatusOK,
			data:     map[string]string{"message": "success"},
			wantBody: map[string]interface{}{"message": "success"},
		},
		{
			name:     "created with numeric field",
			code:     http.StatusCreated,
			data:     map[string]int{"total": 12},
			wantBody: map[string]interface{}{"total": float64(12)}, // JSON numbers decode as float64
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			JSON(w, r, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var got map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(w, r, http.StatusForbidden, "forbidden")

	assert.Equal(t, http.StatusForbidden, w.Code)

	var got map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "forbidden", got["error"])
}
