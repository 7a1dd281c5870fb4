package service_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clicknote/internal/service"
)

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "", service.PriorityNone.String())
	assert.Equal(t, "Low", service.PriorityLow.String())
	assert.Equal(t, "High", service.Priority(3).String())
	assert.Equal(t, "Critical", service.PriorityCritical.String())
	assert.Equal(t, "", service.Priority(9).String())
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    service.Priority
		wantErr bool
	}{
		{in: "", want: service.PriorityNone},
		{in: "3", want: service.PriorityHigh},
		{in: " medium ", want: service.PriorityMedium},
		{in: "CRITICAL", want: service.PriorityCritical},
		{in: "0", want: service.PriorityNone},
		{in: "7", wantErr: true},
		{in: "urgent", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := service.ParsePriority(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreatedTaskError(t *testing.T) {
	ok := service.CreatedTask{ID: "abc", URL: "https://app.clickup.com/t/abc"}
	assert.NoError(t, ok.Error())

	failed := service.CreatedTask{Err: "List not found", ECode: "ITEM_013"}
	err := failed.Error()
	require.Error(t, err)

	var appErr *service.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "List not found", appErr.Message)
	assert.Equal(t, "ITEM_013", appErr.Code)
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "not logged in", err: fmt.Errorf("wrap: %w", service.ErrNotLoggedIn), want: true},
		{name: "oauth message", err: &service.ApplicationError{Op: "get teams", Message: "Oauth token not found"}, want: true},
		{name: "oauth code", err: &service.ApplicationError{Op: "get teams", Message: "x", Code: "OAUTH_027"}, want: true},
		{name: "401 status", err: &service.ApplicationError{Op: "get teams", Message: "x", Status: http.StatusUnauthorized}, want: true},
		{name: "exchange failure", err: &service.AuthExchangeError{Err: errors.New("bad code")}, want: true},
		{name: "other application error", err: &service.ApplicationError{Op: "create task", Message: "List not found"}, want: false},
		{name: "network", err: &service.NetworkError{Op: "get teams", Err: errors.New("dial tcp")}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.IsAuthError(tt.err))
		})
	}
}

func TestRemoteErrorMessage(t *testing.T) {
	err := &service.RemoteError{Op: "get tasks", Field: "tasks", Status: 200}
	assert.Equal(t, `get tasks: response has no "tasks" field (status 200)`, err.Error())
}

func TestErrNotFoundMatching(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "404 status", err: &service.ApplicationError{Op: "get tasks", Message: "Not found", Status: http.StatusNotFound}, want: true},
		{name: "list not found code", err: &service.ApplicationError{Op: "get tasks", Message: "List not found", Code: "ITEM_013", Status: http.StatusOK}, want: true},
		{name: "wrapped", err: fmt.Errorf("resync: %w", &service.ApplicationError{Code: "ITEM_013"}), want: true},
		{name: "forbidden", err: &service.ApplicationError{Op: "get tasks", Message: "List not accessible", Code: "ITEM_015", Status: http.StatusForbidden}, want: false},
		{name: "undecodable 404", err: &service.RemoteError{Op: "get tasks", Status: http.StatusNotFound, Err: errors.New("invalid character")}, want: true},
		{name: "missing field", err: &service.RemoteError{Op: "get tasks", Field: "tasks", Status: http.StatusOK}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, service.ErrNotFound))
		})
	}
}
