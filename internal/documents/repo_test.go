package documents

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "documents.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Document{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateAndGet_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	payload := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff, 0x10}
	notes := "açlık kanı"
	doc := &Document{
		ID:        "doc-1",
		UserID:    "user-1",
		Title:     "Tam kan sayımı",
		Type:      "blood_test",
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Notes:     &notes,
		FileData:  base64.StdEncoding.EncodeToString(payload),
		FileType:  "pdf",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != doc.Title || got.Type != doc.Type || got.FileType != doc.FileType {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Fatalf("notes mismatch: %v", got.Notes)
	}
	if !got.Date.Equal(doc.Date) {
		t.Fatalf("clinical date mismatch: %v != %v", got.Date, doc.Date)
	}

	decoded, err := base64.StdEncoding.DecodeString(got.FileData)
	if err != nil {
		t.Fatalf("decode file_data: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatalf("file payload not byte-for-byte identical")
	}
}

func TestGet_OtherUsersDocumentHidden(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	if err := repo.Create(context.Background(), &Document{
		ID: "doc-1", UserID: "user-a", Title: "t", Type: "other",
		Date: time.Now().UTC(), FileData: "QQ==", FileType: "pdf",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// a foreign document must be indistinguishable from a missing one
	if _, err := repo.Get(context.Background(), "user-b", "doc-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.Get(context.Background(), "user-a", "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for missing doc, got %v", err)
	}
}

func TestDelete_OwnershipScoped(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	if err := repo.Create(context.Background(), &Document{
		ID: "doc-1", UserID: "user-a", Title: "t", Type: "other",
		Date: time.Now().UTC(), FileData: "QQ==", FileType: "image",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(context.Background(), "user-b", "doc-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign delete, got %v", err)
	}
	// the document must survive the foreign delete attempt
	if _, err := repo.Get(context.Background(), "user-a", "doc-1"); err != nil {
		t.Fatalf("document gone after foreign delete: %v", err)
	}

	if err := repo.Delete(context.Background(), "user-a", "doc-1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), "user-a", "doc-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected document removed, got %v", err)
	}
	if err := repo.Delete(context.Background(), "user-a", "doc-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on second delete, got %v", err)
	}
}

func TestListByUser_CapAndOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 110; i++ {
		if err := repo.Create(context.Background(), &Document{
			ID:        fmt.Sprintf("doc-%03d", i),
			UserID:    "user-1",
			Title:     fmt.Sprintf("t%d", i),
			Type:      "other",
			Date:      base.AddDate(0, 0, i),
			FileData:  "QQ==",
			FileType:  "pdf",
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	docs, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 100 {
		t.Fatalf("expected listing capped at 100, got %d", len(docs))
	}
	if docs[0].ID != "doc-109" {
		t.Fatalf("expected newest clinical date first, got %s", docs[0].ID)
	}
	for i := 1; i < len(docs); i++ {
		if docs[i].Date.After(docs[i-1].Date) {
			t.Fatalf("listing not in descending clinical-date order at %d", i)
		}
	}
}

func TestListByUser_ScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	for i, uid := range []string{"user-a", "user-a", "user-b"} {
		if err := repo.Create(context.Background(), &Document{
			ID: fmt.Sprintf("doc-%d", i), UserID: uid, Title: "t", Type: "other",
			Date: time.Now().UTC(), FileData: "QQ==", FileType: "pdf",
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	docs, err := repo.ListByUser(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents for user-a, got %d", len(docs))
	}
}
