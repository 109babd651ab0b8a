package permission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
)

func principalWith(id uuid.UUID, roles ...string) *auth.Principal {
	return &auth.Principal{ID: id, Roles: auth.RolesOf(roles...)}
}

func TestTaskPermissionMatrix(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()
	task := model.Task{ID: uuid.New(), Owner: model.User{ID: ownerID}}

	tests := []struct {
		name      string
		principal *auth.Principal
		wantEdit  bool
		wantDel   bool
	}{
		{"admin", principalWith(otherID, "admin"), true, true},
		{"admin who is owner", principalWith(ownerID, "admin"), true, true},
		{"manager not owner", principalWith(otherID, "manager"), true, false},
		{"manager who is owner", principalWith(ownerID, "manager"), true, true},
		{"plain user not owner", principalWith(otherID, "user"), false, false},
		{"plain user who is owner", principalWith(ownerID, "user"), true, true},
		{"roleless principal who is owner", principalWith(ownerID), true, true},
		{"roleless principal not owner", principalWith(otherID), false, false},
		{"admin and manager both", principalWith(otherID, "manager", "admin"), true, true},
		{"unauthenticated", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantEdit, CanEditTask(tt.principal, task), "edit")
			assert.Equal(t, tt.wantDel, CanDeleteTask(tt.principal, task), "delete")
		})
	}
}

func TestAssignmentConfersNoRights(t *testing.T) {
	assigneeID := uuid.New()
	task := model.Task{
		ID:        uuid.New(),
		Owner:     model.User{ID: uuid.New()},
		Assignees: []model.User{{ID: assigneeID}},
	}

	assignee := principalWith(assigneeID, "user")
	assert.False(t, CanEditTask(assignee, task))
	assert.False(t, CanDeleteTask(assignee, task))
}

func TestCanCreateTask(t *testing.T) {
	assert.True(t, CanCreateTask(principalWith(uuid.New(), "admin")))
	assert.True(t, CanCreateTask(principalWith(uuid.New(), "manager")))
	assert.False(t, CanCreateTask(principalWith(uuid.New(), "user")))
	assert.False(t, CanCreateTask(principalWith(uuid.New())))
	assert.False(t, CanCreateTask(nil))
}

func TestCanModifyComment(t *testing.T) {
	authorID := uuid.New()
	comment := model.Comment{ID: uuid.New(), Author: model.User{ID: authorID}}

	assert.True(t, CanModifyComment(principalWith(authorID, "user"), comment))
	assert.False(t, CanModifyComment(principalWith(uuid.New(), "user"), comment))
	assert.False(t, CanModifyComment(nil, comment))

	// No role overrides comment ownership, not even admin.
	assert.False(t, CanModifyComment(principalWith(uuid.New(), "admin"), comment))
	assert.False(t, CanModifyComment(principalWith(uuid.New(), "manager"), comment))
}
