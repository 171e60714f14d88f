package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudhamrit/grocery-api/models"
)

func TestRegisterAlwaysCreatesCustomer(t *testing.T) {
	server, store := newTestServer(t)

	// a submitted role must not be honored
	w := doJSON(t, server, http.MethodPost, "/api/register", "", gin.H{
		"username": "mallory",
		"password": "secret123",
		"fullName": "Mallory",
		"role":     models.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleCustomer, resp.User.Role)

	stored, err := store.GetUserByUsername(context.Background(), "mallory")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, stored.Role)

	token := login(t, server, "mallory")
	w = doJSON(t, server, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminCreatesUserWithRole(t *testing.T) {
	server, store := newTestServer(t)
	adminToken := provisionUser(t, server, store, "boss", models.RoleAdmin)

	w := doJSON(t, server, http.MethodPost, "/api/users", adminToken, gin.H{
		"username": "driver",
		"password": "secret123",
		"fullName": "Test driver",
		"role":     models.RoleDelivery,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleDelivery, resp.User.Role)

	// the new account can log in and carries its role
	token := login(t, server, "driver")
	w = doJSON(t, server, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/users", adminToken, gin.H{
		"username": "nobody",
		"password": "secret123",
		"fullName": "Nobody",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminCreateUserIsAdminOnly(t *testing.T) {
	server, _ := newTestServer(t)
	customerToken := signup(t, server, "alice")

	payload := gin.H{
		"username": "driver",
		"password": "secret123",
		"fullName": "Test driver",
		"role":     models.RoleDelivery,
	}

	w := doJSON(t, server, http.MethodPost, "/api/users", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, server, http.MethodPost, "/api/users", customerToken, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
