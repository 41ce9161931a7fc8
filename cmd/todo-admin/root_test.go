package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"serve"}, {"migrate"}, {"user", "add"}, {"token"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("migrate"))

	token, _, err := root.Find([]string{"token"})
	require.NoError(t, err)
	roles, err := token.Flags().GetStringSlice("role")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, roles)
}

func TestBootstrapRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, _, err := bootstrap()
	assert.Error(t, err)
}
