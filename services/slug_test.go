package services

import (
	"testing"

	"authorsheaven/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Test Article", "test-article"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"---", ""},
		{"résumé tips", "r-sum-tips"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestUniqueSlugSuffixesOnCollision(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Article{}, &models.Tag{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if got := UniqueSlug(db, "Test Article"); got != "test-article" {
		t.Fatalf("first slug = %q, want test-article", got)
	}

	for i, want := range []string{"test-article", "test-article-1", "test-article-2"} {
		got := UniqueSlug(db, "Test Article")
		if got != want {
			t.Errorf("slug #%d = %q, want %q", i, got, want)
		}
		db.Create(&models.Article{Slug: got, Title: "Test Article", Body: "body"})
	}
}

func TestUniqueSlugEmptyTitleFallsBack(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Article{}, &models.Tag{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if got := UniqueSlug(db, "!!!"); got != "article" {
		t.Errorf("slug for unslugifiable title = %q, want article", got)
	}
}
