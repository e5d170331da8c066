package umsapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", "token")
	require.Error(t, err)

	c, err := NewClient("http://localhost:4000", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000", c.BaseURL)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "tok123")
	require.NoError(t, err)
	_, err = c.ListUMS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestRetriesExactlyOnceOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"u1","umsName":"Test U"}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	list, err := c.ListUMS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].ID)
}

func TestGivesUpAfterSecondServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	_, err := c.ListUMS(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnknown, apiErr.Kind)
}

func TestUnauthorizedFiresHookAndMapsKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "stale")
	hookFired := false
	c.OnUnauthorized(func() { hookFired = true })

	_, err := c.ListUMS(context.Background())
	require.Error(t, err)
	assert.True(t, hookFired, "the unauthorized hook must fire on 401")
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "session expired, please log in again", err.Error())
}

func TestConflictMapsToFixedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"duplicate key error E11000"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	_, err := c.CreateDepartment(context.Background(), DepartmentInput{Name: "Science"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "a resource with that name already exists", err.Error())
}

func TestValidationErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"name is required"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	_, err := c.CreateDepartment(context.Background(), DepartmentInput{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "name is required", err.Error())
}

func TestNotFoundKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	_, err := c.GetUMS(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNetworkErrorKind(t *testing.T) {
	c, _ := NewClient("http://127.0.0.1:1", "tok")
	_, err := c.ListUMS(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestListDecodesEnvelopeAndBareArray(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"envelope", `{"success":true,"data":[{"_id":"d1","name":"Science"}],"message":"ok"}`, 1},
		{"bare array", `[{"_id":"d1","name":"Science"},{"_id":"d2","name":"Arts"}]`, 2},
		{"envelope with null data", `{"success":true,"data":null}`, 0},
		{"bare null", `null`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, _ := NewClient(srv.URL, "tok")
			list, err := c.ListDepartments(context.Background(), "u1")
			require.NoError(t, err)
			require.NotNil(t, list, "lists must never be nil")
			assert.Len(t, list, tc.want)
		})
	}
}

func TestNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	assert.NoError(t, c.DeleteDepartment(context.Background(), "d1"))
}

func TestRootLoginDecodesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/root/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"access_token":"fresh-token"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "")
	token, err := c.RootLogin(context.Background(), "root@console.cm", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestUpdateDepartmentOmitsUnsetFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"_id":"d1","name":"Science","description":"updated"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	_, err := c.UpdateDepartment(context.Background(), "d1", DepartmentInput{Description: "updated"})
	require.NoError(t, err)

	assert.Equal(t, "updated", body["description"])
	_, hasName := body["name"]
	assert.False(t, hasName, "an unset name must not be sent, or the backend blanks it")
}

func TestUpdateStudentOmitsUnsetFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"_id":"s1","firstName":"Amina","lastName":"Njoya"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	_, err := c.UpdateStudent(context.Background(), "s1", StudentInput{Email: "amina@uy1.cm"})
	require.NoError(t, err)

	assert.Equal(t, "amina@uy1.cm", body["email"])
	for _, field := range []string{"firstName", "lastName", "programId"} {
		_, present := body[field]
		assert.False(t, present, "unset %s must not be sent", field)
	}
}

func TestServerMessageFallbacks(t *testing.T) {
	assert.Equal(t, "msg", serverMessage([]byte(`{"message":"msg"}`), "fb"))
	assert.Equal(t, "err", serverMessage([]byte(`{"error":"err"}`), "fb"))
	assert.Equal(t, "fb", serverMessage([]byte(`{}`), "fb"))
	assert.Equal(t, "fb", serverMessage([]byte(`not json`), "fb"))
}
