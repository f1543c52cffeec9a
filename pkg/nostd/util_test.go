package nostd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		header   string
		expected string
	}{
		{"Bearer abc.def", "abc.def"},
		{"Bearer  padded ", "padded"},
		{"Basic abc", ""},
		{"", ""},
		{"bearer abc", ""},
	}

	e := echo.New()
	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set(echo.HeaderAuthorization, tc.header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		assert.Equal(t, tc.expected, BearerToken(c), tc.header)
	}
}
