package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Ref    string `validate:"required_without=Alt"`
	Alt    string `validate:"required_without=Ref"`
	Status string `validate:"required"`
	Amount int64  `validate:"gte=0"`
}

func TestValidateStruct(t *testing.T) {
	assert.Empty(t, ValidateStruct(sample{Ref: "INV-1", Status: "PAID"}))

	errs := ValidateStruct(sample{Amount: -1})
	require.Len(t, errs, 4)

	tags := map[string]string{}
	for _, e := range errs {
		tags[e.Field] = e.Tag
	}
	assert.Equal(t, "required_without", tags["Ref"])
	assert.Equal(t, "required", tags["Status"])
	assert.Equal(t, "gte", tags["Amount"])
}

func TestAsValidationError(t *testing.T) {
	assert.NoError(t, AsValidationError(nil))

	err := AsValidationError(ValidateStruct(sample{Ref: "INV-1"}))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Status", verr.Field)
	assert.Equal(t, "Status is required", verr.Message)
}

func TestRespondWithValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithValidationErrors(c, []FieldError{{Field: "Status", Tag: "required", Message: "Status is required"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}
