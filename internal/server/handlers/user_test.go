package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medimart/medimart/internal/auth/token"
	"github.com/medimart/medimart/internal/crypto"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/pkg/api"
)

func createUserBody(t *testing.T, req api.CreateUserRequest) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestUserHandler_Create_Success(t *testing.T) {
	store := newMockStorage()
	h := NewUserHandler(testLogger(), store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/create-user", createUserBody(t, api.CreateUserRequest{
		Name:     "New Vendor",
		Email:    "vendor@example.com",
		Password: "pa55word",
		Role:     "VENDOR",
	}))
	w := httptest.NewRecorder()

	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var pub models.PublicUser
	require.NoError(t, json.Unmarshal(env.Data, &pub))
	assert.Equal(t, "vendor@example.com", pub.Email)
	assert.Equal(t, models.RoleVendor, pub.Role)
	assert.True(t, pub.IsActive)

	// Stored password is hashed, never plaintext.
	stored, err := store.GetUserByEmail(req.Context(), "vendor@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pa55word", stored.Password)
	assert.NoError(t, crypto.CheckPassword("pa55word", stored.Password))
}

func TestUserHandler_Create_Failures(t *testing.T) {
	existing := testUser(t, "pa55word")

	tests := []struct {
		name       string
		body       *bytes.Buffer
		wantStatus int
	}{
		{
			name: "duplicate email",
			body: createUserBody(t, api.CreateUserRequest{
				Name: "Dup", Email: existing.Email, Password: "x", Role: "CUSTOMER",
			}),
			wantStatus: http.StatusConflict,
		},
		{
			name: "unknown role",
			body: createUserBody(t, api.CreateUserRequest{
				Name: "Bad", Email: "bad@example.com", Password: "x", Role: "WIZARD",
			}),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing fields",
			body:       bytes.NewBufferString("{}"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(testLogger(), newMockStorage(existing))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/user/create-user", tt.body)
			w := httptest.NewRecorder()

			h.Create(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUserHandler_Me(t *testing.T) {
	user := testUser(t, "pa55word")
	h := NewUserHandler(testLogger(), newMockStorage(user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	req = req.WithContext(token.WithClaims(req.Context(), &token.Claims{UserID: user.ID}))
	w := httptest.NewRecorder()

	h.Me(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var pub models.PublicUser
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &pub))
	assert.Equal(t, user.Public(), pub)
}

func TestUserHandler_Me_ReflectsCurrentState(t *testing.T) {
	// The /me response reflects the store, not the token snapshot.
	user := testUser(t, "pa55word")
	store := newMockStorage(user)
	h := NewUserHandler(testLogger(), store)

	_, err := store.UpdateRole(t.Context(), user.ID, models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/me", nil)
	req = req.WithContext(token.WithClaims(req.Context(), &token.Claims{UserID: user.ID, Role: models.RoleCustomer}))
	w := httptest.NewRecorder()

	h.Me(w, req)

	var pub models.PublicUser
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &pub))
	assert.Equal(t, models.RoleAdmin, pub.Role)
}

func TestUserHandler_List(t *testing.T) {
	u1 := testUser(t, "pa55word")
	u2 := testUser(t, "pa55word")
	u2.ID = "user-2"
	u2.Email = "second@example.com"

	h := NewUserHandler(testLogger(), newMockStorage(u1, u2))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user?page=1&limit=10", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var users []models.PublicUser
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 2)
}

func TestUserHandler_UpdateRole(t *testing.T) {
	user := testUser(t, "pa55word")
	h := NewUserHandler(testLogger(), newMockStorage(user))

	body, err := json.Marshal(api.UpdateRoleRequest{Role: "ADMIN"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/user/update-role/"+user.ID, bytes.NewBuffer(body))
	req.SetPathValue("id", user.ID)
	w := httptest.NewRecorder()

	h.UpdateRole(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var pub models.PublicUser
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &pub))
	assert.Equal(t, models.RoleAdmin, pub.Role)
}

func TestUserHandler_UpdateRole_UnknownUser(t *testing.T) {
	h := NewUserHandler(testLogger(), newMockStorage())

	body, err := json.Marshal(api.UpdateRoleRequest{Role: "ADMIN"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/user/update-role/ghost", bytes.NewBuffer(body))
	req.SetPathValue("id", "ghost")
	w := httptest.NewRecorder()

	h.UpdateRole(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_UpdateStatus(t *testing.T) {
	user := testUser(t, "pa55word")
	h := NewUserHandler(testLogger(), newMockStorage(user))

	body, err := json.Marshal(api.UpdateStatusRequest{IsSuspended: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/user/update-status/"+user.ID, bytes.NewBuffer(body))
	req.SetPathValue("id", user.ID)
	w := httptest.NewRecorder()

	h.UpdateStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var pub models.PublicUser
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &pub))
	assert.False(t, pub.IsActive, "suspended user is inactive")
	assert.False(t, user.IsActive)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	user := testUser(t, "pa55word")
	h := NewUserHandler(testLogger(), newMockStorage(user))

	body, err := json.Marshal(api.UpdateProfileRequest{Name: "Renamed", ProfilePhoto: "photos/new.jpg"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/user/update-profile", bytes.NewBuffer(body))
	req = req.WithContext(token.WithClaims(req.Context(), &token.Claims{UserID: user.ID}))
	w := httptest.NewRecorder()

	h.UpdateProfile(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "photos/new.jpg", user.ProfilePhoto)
}
