package metering

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
)

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, req Request) (*Result, error) {
	args := m.Called(ctx, req)
	var res *Result
	if v := args.Get(0); v != nil {
		res = v.(*Result)
	}
	return res, args.Error(1)
}

func TestAuthorize_Handler(t *testing.T) {
	balance := int64(9)

	tests := []struct {
		name       string
		userID     int
		body       string
		setupMock  func(m *MockAuthorizer)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "Charged",
			userID: 7,
			body:   `{"idempotencyKey":"job-1"}`,
			setupMock: func(m *MockAuthorizer) {
				m.On("Authorize", mock.Anything, Request{UserID: 7, Action: "edit_image", IdempotencyKey: "job-1"}).
					Return(&Result{Action: ActionEditImage, Credential: CredentialSystem, Metered: true, Charged: 3, NewBalance: &balance}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"charged":3`,
		},
		{
			name:   "Insufficient credits",
			userID: 7,
			body:   `{"idempotencyKey":"job-2","credential":"system"}`,
			setupMock: func(m *MockAuthorizer) {
				m.On("Authorize", mock.Anything, mock.Anything).
					Return(&Result{Action: ActionEditImage, FallbackAvailable: true}, api.ErrInsufficientCredits)
			},
			wantStatus: http.StatusPaymentRequired,
			wantBody:   `"fallbackAvailable":true`,
		},
		{
			name:   "Idempotency key reused",
			userID: 7,
			body:   `{"idempotencyKey":"job-1"}`,
			setupMock: func(m *MockAuthorizer) {
				m.On("Authorize", mock.Anything, mock.Anything).Return(nil, api.ErrIdempotencyConflict)
			},
			wantStatus: http.StatusConflict,
			wantBody:   "idempotency key",
		},
		{
			name:       "Bad credential",
			userID:     7,
			body:       `{"idempotencyKey":"job-3","credential":"team"}`,
			setupMock:  func(m *MockAuthorizer) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Unauthenticated",
			body:       `{"idempotencyKey":"job-4"}`,
			setupMock:  func(m *MockAuthorizer) {},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authorizer := new(MockAuthorizer)
			tt.setupMock(authorizer)

			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.POST("/credits/actions/:action/authorize", func(c *gin.Context) {
				if tt.userID > 0 {
					c.Set("user_id", tt.userID)
				}
				c.Next()
			}, NewHandler(authorizer).Authorize)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/credits/actions/edit_image/authorize", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
			authorizer.AssertExpectations(t)
		})
	}
}
