package umsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CampusFoundry/ums-console/pkg/models"
)

func TestCreateUMSMultipartFields(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		w.Write([]byte(`{"success":true,"data":{"_id":"new-ums","umsName":"UY1"}}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	draft := &models.UMSForm{
		UMSName:        "UY1",
		UMSDescription: "Public university",
		AdminName:      "Jean Mballa",
		AdminEmail:     "jean@uy1.cm",
		Enable2FA:      true,
		Modules: []models.ModuleSelection{
			{Name: "Student Information", Tier: models.TierBasic},
		},
		Platforms: models.Platforms{TeacherApp: true},
	}

	created, err := c.CreateUMS(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "new-ums", created.ID)

	assert.Equal(t, "UY1", form["umsName"][0])
	assert.Equal(t, "true", form["enable2FA"][0])
	assert.Empty(t, form["umsTagline"], "empty optional fields must be omitted")

	var tokens []string
	require.NoError(t, json.Unmarshal([]byte(form["modules"][0]), &tokens))
	assert.Equal(t, []string{"Student Information_basic"}, tokens)

	var platforms models.Platforms
	require.NoError(t, json.Unmarshal([]byte(form["platforms"][0]), &platforms))
	assert.True(t, platforms.TeacherApp)
}

func TestCreateUMSRemoteImageStaysField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "https://cdn.uy1.cm/logo.png", r.MultipartForm.Value["umsLogo"][0])
		assert.Empty(t, r.MultipartForm.File["umsLogo"])
		w.Write([]byte(`{"_id":"u1","umsName":"UY1"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	draft := &models.UMSForm{
		UMSName:        "UY1",
		UMSDescription: "d",
		AdminName:      "a",
		AdminEmail:     "a@b.cm",
		UMSLogo:        "https://cdn.uy1.cm/logo.png",
	}
	_, err := c.CreateUMS(context.Background(), draft)
	require.NoError(t, err)
}

func TestCreateUMSDataURLBecomesFilePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["umsLogo"]
		require.Len(t, files, 1)
		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, 16)
		n, _ := f.Read(buf)
		assert.Equal(t, "hello", string(buf[:n]))
		w.Write([]byte(`{"_id":"u1","umsName":"UY1"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	draft := &models.UMSForm{
		UMSName:        "UY1",
		UMSDescription: "d",
		AdminName:      "a",
		AdminEmail:     "a@b.cm",
		UMSLogo:        "data:image/png;base64,aGVsbG8=", // "hello"
	}
	_, err := c.CreateUMS(context.Background(), draft)
	require.NoError(t, err)
}

func TestUpdateUMSSendsPatch(t *testing.T) {
	var method, path string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"_id":"u1","umsName":"Renamed"}`))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tok")
	updated, err := c.UpdateUMS(context.Background(), "u1", map[string]any{"umsName": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, method)
	assert.Equal(t, "/ums/u1", path)
	assert.Equal(t, "Renamed", body["umsName"])
	assert.Equal(t, "Renamed", updated.UMSName)
}
