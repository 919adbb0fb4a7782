package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/internal/config"
)

func TestSessionStore(t *testing.T) {
	dir := t.TempDir()
	st := auth.State{Token: "tok", Email: "chef@stockchef.local", Role: auth.RoleChef}

	fs, err := sessionStore(config.ClientConfig{SessionFile: filepath.Join(dir, "session.json")})
	require.NoError(t, err)
	require.IsType(t, &auth.FileStore{}, fs)

	cfg := config.ClientConfig{SessionFile: filepath.Join(dir, "unused.json"), SessionDB: filepath.Join(dir, "session.db")}
	ds, err := sessionStore(cfg)
	require.NoError(t, err)
	require.IsType(t, &auth.DBStore{}, ds)
	require.NoError(t, ds.Save(st))

	// A second process opening the same file sees the login.
	again, err := sessionStore(cfg)
	require.NoError(t, err)
	got, err := again.Load()
	require.NoError(t, err)
	require.Equal(t, "tok", got.Token)
	require.Equal(t, auth.RoleChef, got.Role)
	require.NoFileExists(t, cfg.SessionFile)

	require.NoError(t, again.Clear())
	_, err = ds.Load()
	require.ErrorIs(t, err, auth.ErrNoSession)
}
