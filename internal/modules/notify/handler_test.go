package notify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/subkart/core/internal/config"
	"github.com/subkart/core/internal/models"
	"github.com/subkart/core/internal/modules/auth/otp"
	"github.com/subkart/core/internal/modules/notify"
	"github.com/subkart/core/internal/pkg/kv"
	"github.com/subkart/core/internal/pkg/mail"
)

type capturedMailer struct {
	mu    sync.Mutex
	codes map[string]int // recipient -> last code
}

func (m *capturedMailer) SendPasswordResetOTP(_ context.Context, to string, code int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	return nil
}

type memUsers struct {
	user *models.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, nil
}

func (m *memUsers) SetPassword(_ context.Context, _ primitive.ObjectID, _ string) error {
	return nil
}

func newEmailRouter(t *testing.T) (*gin.Engine, *capturedMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mailer := &capturedMailer{codes: make(map[string]int)}
	users := &memUsers{user: &models.User{ID: primitive.NewObjectID(), Email: "asha@example.com"}}
	otpSvc := otp.NewService(kv.NewMemoryStore(), mailer, users, nil)

	r := gin.New()
	api := r.Group("/api")
	notify.NewHandler(otpSvc, mail.New(config.MailConfig{})).RegisterRoutes(api)
	return r, mailer
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestPasswordResetFlowOverHTTP(t *testing.T) {
	r, mailer := newEmailRouter(t)

	w, body := postJSON(t, r, "/api/email/send-otp", `{"email":"asha@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP sent successfully", body["message"])
	otpID, _ := body["otpId"].(string)
	require.NotEmpty(t, otpID)

	code := mailer.codes["asha@example.com"]
	require.NotZero(t, code)

	// wrong code first
	w, body = postJSON(t, r, "/api/email/verify-otp",
		fmt.Sprintf(`{"otpId":%q,"otp":%d,"email":"asha@example.com"}`, otpID, code+1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CODE_MISMATCH", body["code"])

	// the code may arrive as a JSON string too
	w, _ = postJSON(t, r, "/api/email/verify-otp",
		fmt.Sprintf(`{"otpId":%q,"otp":"%d","email":"asha@example.com"}`, otpID, code))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = postJSON(t, r, "/api/email/reset-password",
		fmt.Sprintf(`{"otpId":%q,"email":"asha@example.com","newPassword":"fresh-pass"}`, otpID))
	assert.Equal(t, http.StatusOK, w.Code)

	// single use
	w, body = postJSON(t, r, "/api/email/reset-password",
		fmt.Sprintf(`{"otpId":%q,"email":"asha@example.com","newPassword":"fresh-pass"}`, otpID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_REQUEST", body["code"])
}

func TestResetBeforeVerifyRejected(t *testing.T) {
	r, _ := newEmailRouter(t)

	w, body := postJSON(t, r, "/api/email/send-otp", `{"email":"asha@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	otpID := body["otpId"].(string)

	w, body = postJSON(t, r, "/api/email/reset-password",
		fmt.Sprintf(`{"otpId":%q,"email":"asha@example.com","newPassword":"fresh-pass"}`, otpID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NOT_VERIFIED", body["code"])
}

func TestSendOTPValidation(t *testing.T) {
	r, _ := newEmailRouter(t)

	w, _ := postJSON(t, r, "/api/email/send-otp", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = postJSON(t, r, "/api/email/send-otp", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
