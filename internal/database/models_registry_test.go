package database

import (
	"testing"

	"gastronet/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModelsIncludesFollowGraph(t *testing.T) {
	var hasEdge, hasRequest bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.FollowEdge:
			hasEdge = true
		case *models.FollowRequest:
			hasRequest = true
		}
	}
	require.True(t, hasEdge, "PersistentModels should include FollowEdge")
	require.True(t, hasRequest, "PersistentModels should include FollowRequest")
}
