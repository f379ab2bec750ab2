package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createPayload struct {
	Title string   `json:"title" validate:"required,max=20"`
	Year  int      `json:"year" validate:"gte=1888"`
	Tags  []string `json:"tags" validate:"min=1,dive,required"`
}

func (p *createPayload) Validate() error {
	return Struct(p)
}

type customPayload struct {
	Name string `json:"name"`
}

func (p *customPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return CustomValidationErrors{{Field: "name", Message: "must not be blank"}}
	}
	return nil
}

func bind(t *testing.T, body string, payload Validatable) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	return BindAndValidate(c, payload)
}

func TestBindAndValidate_OK(t *testing.T) {
	p := &createPayload{}

	err := bind(t, `{"title":"John Wick","year":2014,"tags":["action"]}`, p)

	require.NoError(t, err)
	assert.Equal(t, "John Wick", p.Title)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	err := bind(t, `{"title":"","year":1700,"tags":[]}`, &createPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "title", Error: "is required"},
		{Field: "year", Error: "must be greater than or equal to 1888"},
		{Field: "tags", Error: "must contain at least 1 items"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MalformedBody(t *testing.T) {
	err := bind(t, `{"title":`, &createPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := bind(t, `{"name":"   "}`, &customPayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "must not be blank"}}, httpErr.Errors)
}
