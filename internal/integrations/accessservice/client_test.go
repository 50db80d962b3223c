package accessservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/internal/users/{userId}/permissions/{permission}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		switch vars["userId"] {
		case "1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id":1,"permission":"` + vars["permission"] + `","allowed":true}`))
		case "2":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id":2,"permission":"` + vars["permission"] + `","allowed":false}`))
		case "3":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_HasPermission(t *testing.T) {
	srv := newServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	tests := []struct {
		name    string
		userID  int64
		want    bool
		wantErr error
	}{
		{name: "allowed", userID: 1, want: true},
		{name: "denied", userID: 2, want: false},
		{name: "unknown user", userID: 3, want: false},
		{name: "upstream failure", userID: 4, want: false, wantErr: ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.HasPermission(context.Background(), tt.userID, PermissionManageSlots)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_GetPermission_DecodesResponse(t *testing.T) {
	srv := newServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	resp, err := client.GetPermission(context.Background(), 1, PermissionManageDefinitions)

	require.NoError(t, err)
	assert.Equal(t, PermissionManageDefinitions, resp.Permission)
	assert.True(t, resp.Allowed)
}

func TestAllowAll(t *testing.T) {
	ok, err := AllowAll{}.HasPermission(context.Background(), 0, PermissionManageSlots)

	require.NoError(t, err)
	assert.True(t, ok)
}
