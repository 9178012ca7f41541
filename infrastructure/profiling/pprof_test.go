package profiling_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/logger"
	"github.com/euisuk-chung/gemini-hak-creator-hub/infrastructure/profiling"
)

func TestNewHandler_ServesIndex(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	profiling.NewHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutine")
}

func TestStart_Disabled(t *testing.T) {
	t.Parallel()

	assert.Nil(t, profiling.Start(profiling.Config{}, logger.NewNop()))
}
