package services

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func newConfigStore(t *testing.T) *file.ConfigStore {
	t.Helper()
	store, err := file.NewConfigStoreFs(afero.NewMemMapFs(), "/home/user/.paperless")
	require.NoError(t, err)
	return store
}

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(newConfigStore(t)).WithEnv(noEnv)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, settings.API.Timeout)
	assert.Zero(t, settings.API.RequestInterval)
	assert.Equal(t, "100MB", settings.Upload.MaxSize)
	assert.Equal(t, "/home/user/.paperless/binary", settings.Binary.Path)
	assert.Empty(t, settings.API.Domain)
}

func TestSettingsService_SaveAndGet(t *testing.T) {
	store := newConfigStore(t)
	service := NewSettingsService(store).WithEnv(noEnv)

	err := service.Save(&domain.Settings{
		API: domain.APISettings{
			Domain:          "https://paperless.local",
			Token:           "abc123",
			Timeout:         10 * time.Second,
			RequestInterval: time.Second,
		},
		Upload: domain.UploadSettings{MaxSize: "20MB"},
		Binary: domain.BinarySettings{Path: "/tmp/bin"},
	})
	require.NoError(t, err)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://paperless.local", settings.API.Domain)
	assert.Equal(t, "abc123", settings.API.Token)
	assert.Equal(t, 10*time.Second, settings.API.Timeout)
	assert.Equal(t, time.Second, settings.API.RequestInterval)
	assert.Equal(t, "20MB", settings.Upload.MaxSize)
	assert.Equal(t, "/tmp/bin", settings.Binary.Path)
}

func TestSettingsService_Save_KeepsTokenWhenEmpty(t *testing.T) {
	store := newConfigStore(t)
	require.NoError(t, store.Set("api.token", "kept"))
	service := NewSettingsService(store).WithEnv(noEnv)

	settings, err := service.Get()
	require.NoError(t, err)
	settings.API.Token = ""
	require.NoError(t, service.Save(settings))

	assert.Equal(t, "kept", store.GetString("api.token"))
}

func TestSettingsService_Effective(t *testing.T) {
	store := newConfigStore(t)
	require.NoError(t, store.Set("api.domain", "https://stored.local"))
	require.NoError(t, store.Set("api.token", "stored"))

	service := NewSettingsService(store).WithEnv(envMap(map[string]string{
		EnvDomain:          "https://env.local",
		EnvTimeout:         "5s",
		EnvRequestInterval: "200ms",
		EnvMaxUploadSize:   "1GB",
		EnvToken:           "  ",
	}))

	settings, err := service.Effective()
	require.NoError(t, err)
	assert.Equal(t, "https://env.local", settings.API.Domain)
	assert.Equal(t, "stored", settings.API.Token, "blank variables are ignored")
	assert.Equal(t, 5*time.Second, settings.API.Timeout)
	assert.Equal(t, 200*time.Millisecond, settings.API.RequestInterval)
	assert.Equal(t, "1GB", settings.Upload.MaxSize)

	stored, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://stored.local", stored.API.Domain)

	t.Run("invalid duration", func(t *testing.T) {
		service := NewSettingsService(store).WithEnv(envMap(map[string]string{EnvTimeout: "soon"}))
		_, err := service.Effective()
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, EnvTimeout, ve.Field)
	})
}

func TestSettingsService_SetConnection(t *testing.T) {
	tests := []struct {
		name      string
		domainURL string
		token     string
		field     string
	}{
		{name: "valid", domainURL: "https://paperless.local/", token: "t"},
		{name: "missing scheme", domainURL: "paperless.local", token: "t", field: "domain"},
		{name: "missing token", domainURL: "https://paperless.local", token: "", field: "token"},
		{name: "missing domain", domainURL: "", token: "t", field: "domain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newConfigStore(t)
			service := NewSettingsService(store).WithEnv(noEnv)

			err := service.SetConnection(tt.domainURL, tt.token)

			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, "https://paperless.local", store.GetString("api.domain"))
				return
			}
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, store.GetString("api.domain"))
		})
	}
}

func TestSettingsService_Validate(t *testing.T) {
	store := newConfigStore(t)
	service := NewSettingsService(store).WithEnv(noEnv)

	assert.True(t, errors.Is(service.Validate(), domain.ErrInvalidInput))

	require.NoError(t, service.SetConnection("https://paperless.local", "t"))
	assert.NoError(t, service.Validate())

	require.NoError(t, store.Set("upload.max_size", "lots"))
	err := service.Validate()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "upload.max_size", ve.Field)
}

func TestMaxUploadBytes(t *testing.T) {
	n, err := MaxUploadBytes(&domain.Settings{Upload: domain.UploadSettings{MaxSize: "100MB"}})
	require.NoError(t, err)
	assert.Equal(t, int64(100_000_000), n)

	n, err = MaxUploadBytes(&domain.Settings{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
