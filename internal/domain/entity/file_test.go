package entity

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Hiro-mackay/linkdrop/internal/domain/valueobject"
)

func newTestFile(workspaceID uuid.UUID, folderID *uuid.UUID) *File {
	name, _ := valueobject.NewFileName("receipt.pdf")
	mime, _ := valueobject.NewMimeType("application/pdf")
	return NewFileWithID(uuid.New(), workspaceID, folderID, name, mime, 1024, Attribution{})
}

func TestFile_NewFileWithID_DerivesStorageKey(t *testing.T) {
	workspaceID := uuid.New()
	file := newTestFile(workspaceID, nil)

	want := workspaceID.String() + "/" + file.ID.String()
	if file.StorageKey.Value() != want {
		t.Errorf("got storage key %q, want %q", file.StorageKey.Value(), want)
	}
	if !file.IsAtRoot() {
		t.Error("expected file to be at root")
	}
}

func TestFile_MoveTo_KeepsStorageKey(t *testing.T) {
	file := newTestFile(uuid.New(), nil)
	key := file.StorageKey
	folderID := uuid.New()

	file.MoveTo(&folderID)
	name, _ := valueobject.NewFileName("renamed.pdf")
	file.Rename(name)

	if file.StorageKey != key {
		t.Error("storage key must never change")
	}
	if !file.IsInFolder(&folderID) {
		t.Error("expected file to be in new folder")
	}
}

func TestOrphanedRecord_FromFile(t *testing.T) {
	file := newTestFile(uuid.New(), nil)

	record := NewOrphanedRecord(file, "db unavailable")

	if record.FileID != file.ID || record.WorkspaceID != file.WorkspaceID {
		t.Error("expected record to reference file")
	}
	if record.StorageKey != file.StorageKey.Value() {
		t.Errorf("got %q, want %q", record.StorageKey, file.StorageKey.Value())
	}
	if record.IsResolved() {
		t.Error("new record must be unresolved")
	}
}
