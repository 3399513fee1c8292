package entity

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

func newFolderName(name string) valueobject.FolderName {
	fn, _ := valueobject.NewFolderName(name)
	return fn
}

func TestFolder_NewFolder_SetsAllFields(t *testing.T) {
	workspaceID := uuid.New()
	parentID := uuid.New()
	linkID := uuid.New()

	folder := NewFolder(workspaceID, newFolderName("Tax2024"), &parentID, Attribution{LinkID: &linkID})

	if folder.ID == uuid.Nil {
		t.Error("expected ID to be generated")
	}
	if folder.WorkspaceID != workspaceID {
		t.Errorf("expected WorkspaceID %v, got %v", workspaceID, folder.WorkspaceID)
	}
	if folder.ParentID == nil || *folder.ParentID != parentID {
		t.Errorf("expected ParentID %v, got %v", parentID, folder.ParentID)
	}
	if !folder.Attribution.HasLink() {
		t.Error("expected attribution to carry link")
	}
	if folder.IsRoot() {
		t.Error("folder with parent should not be root")
	}
}

func TestFolder_IsInParent_NormalizesNil(t *testing.T) {
	root := NewFolder(uuid.New(), newFolderName("root"), nil, Attribution{})
	parentID := uuid.New()
	otherID := uuid.New()
	child := NewFolder(uuid.New(), newFolderName("child"), &parentID, Attribution{})

	if !root.IsInParent(nil) {
		t.Error("root should be in nil parent")
	}
	if root.IsInParent(&parentID) {
		t.Error("root should not be in non-nil parent")
	}
	samePtr := parentID
	if !child.IsInParent(&samePtr) {
		t.Error("child should be in its parent even via different pointer")
	}
	if child.IsInParent(&otherID) {
		t.Error("child should not be in other parent")
	}
	if child.IsInParent(nil) {
		t.Error("child should not be at root")
	}
}

func TestFolder_MoveToAndRename(t *testing.T) {
	folder := NewFolder(uuid.New(), newFolderName("old"), nil, Attribution{})
	newParent := uuid.New()

	folder.MoveTo(&newParent)
	folder.Rename(newFolderName("new"))

	if folder.IsRoot() {
		t.Error("expected folder to have a parent after move")
	}
	if folder.Name.Value() != "new" {
		t.Errorf("got %q, want %q", folder.Name.Value(), "new")
	}
}

func TestFolder_BelongsTo(t *testing.T) {
	workspaceID := uuid.New()
	folder := NewFolder(workspaceID, newFolderName("a"), nil, Attribution{})

	if !folder.BelongsTo(workspaceID) {
		t.Error("expected folder to belong to its workspace")
	}
	if folder.BelongsTo(uuid.New()) {
		t.Error("expected folder not to belong to another workspace")
	}
}
