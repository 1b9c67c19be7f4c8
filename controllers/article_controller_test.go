package controllers_test

import (
	"net/http"
	"testing"

	"authorsheaven/global"
	"authorsheaven/models"
)

func TestCreateArticleAssignsSlug(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "author")

	slug := createArticle(t, r, token, "Test Article")
	if slug != "test-article" {
		t.Errorf("slug = %q, want %q", slug, "test-article")
	}
}

func TestDuplicateTitlesGetSuffixedSlugs(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "author")

	first := createArticle(t, r, token, "Test Article")
	second := createArticle(t, r, token, "Test Article")
	third := createArticle(t, r, token, "Test Article")

	if first != "test-article" || second != "test-article-1" || third != "test-article-2" {
		t.Errorf("slugs = %q, %q, %q; want test-article, test-article-1, test-article-2", first, second, third)
	}
}

func TestCreateArticleValidation(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "author")

	cases := []struct {
		name    string
		article map[string]interface{}
		field   string
	}{
		{"missing title", map[string]interface{}{"body": "some body"}, "title"},
		{"missing body", map[string]interface{}{"title": "some title"}, "body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/articles", token, map[string]interface{}{"article": tc.article})
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			payload := decodeBody(t, w)
			if payload["status"] != "error" {
				t.Errorf("status field = %v, want error", payload["status"])
			}
			message := payload["message"].(map[string]interface{})
			if _, ok := message[tc.field]; !ok {
				t.Errorf("expected field message for %q, got %v", tc.field, message)
			}
		})
	}
}

func TestCreateArticleRequiresAuth(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodPost, "/api/articles", "", map[string]interface{}{
		"article": map[string]interface{}{"title": "t", "body": "b"},
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestListArticlesNewestFirstAndAnonymous(t *testing.T) {
	r := setupServer(t)
	token := registerUser(t, r, "author")
	createArticle(t, r, token, "Older Article")
	createArticle(t, r, token, "Newer Article")

	w := doJSON(r, http.MethodGet, "/api/articles", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	payload := decodeBody(t, w)
	articles := payload["articles"].([]interface{})
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	newest := articles[0].(map[string]interface{})
	if newest["slug"] != "newer-article" {
		t.Errorf("first listed slug = %v, want newer-article", newest["slug"])
	}
}

func TestGetArticleNotFound(t *testing.T) {
	r := setupServer(t)

	w := doJSON(r, http.MethodGet, "/api/articles/no-such-slug", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateArticleOwnership(t *testing.T) {
	r := setupServer(t)
	author := registerUser(t, r, "author")
	intruder := registerUser(t, r, "intruder")
	slug := createArticle(t, r, author, "Test Article")

	update := map[string]interface{}{"article": map[string]interface{}{"title": "New Title"}}

	w := doJSON(r, http.MethodPut, "/api/articles/"+slug, intruder, update)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-author update status = %d, want 403", w.Code)
	}

	w = doJSON(r, http.MethodPut, "/api/articles/"+slug, author, update)
	if w.Code != http.StatusOK {
		t.Fatalf("author update status = %d, want 200: %s", w.Code, w.Body.String())
	}
	payload := decodeBody(t, w)
	article := payload["article"].(map[string]interface{})
	if article["title"] != "New Title" {
		t.Errorf("title = %v, want New Title", article["title"])
	}
	// the slug never follows the title
	if article["slug"] != "test-article" {
		t.Errorf("slug = %v, want test-article", article["slug"])
	}
}

func TestDeleteArticleCascades(t *testing.T) {
	r := setupServer(t)
	author := registerUser(t, r, "author")
	reader := registerUser(t, r, "reader")
	slug := createArticle(t, r, author, "Test Article")

	doJSON(r, http.MethodPost, "/api/articles/"+slug+"/comments", reader,
		map[string]interface{}{"comment": map[string]interface{}{"body": "a comment"}})
	doJSON(r, http.MethodPost, "/api/articles/"+slug+"/rate", reader,
		map[string]interface{}{"rating": map[string]interface{}{"rating": 4.0}})
	doJSON(r, http.MethodPost, "/api/articles/"+slug+"/like", reader,
		map[string]interface{}{"likes": true})
	doJSON(r, http.MethodPost, "/api/articles/"+slug+"/favourite", reader, nil)

	w := doJSON(r, http.MethodDelete, "/api/articles/"+slug, reader, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-author delete status = %d, want 403", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/articles/"+slug, author, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("author delete status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/articles/"+slug, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted article GET status = %d, want 404", w.Code)
	}

	for name, model := range map[string]interface{}{
		"comments":   &models.Comment{},
		"ratings":    &models.Rating{},
		"reactions":  &models.Reaction{},
		"favourites": &models.Favourite{},
	} {
		var count int64
		global.Db.Model(model).Count(&count)
		if count != 0 {
			t.Errorf("%s left behind after article delete: %d rows", name, count)
		}
	}
}

func TestTopArticlesFallsBackToStore(t *testing.T) {
	r := setupServer(t)
	author := registerUser(t, r, "author")
	fanOne := registerUser(t, r, "fan_one")
	fanTwo := registerUser(t, r, "fan_two")
	popular := createArticle(t, r, author, "Popular Article")
	quiet := createArticle(t, r, author, "Quiet Article")

	doJSON(r, http.MethodPost, "/api/articles/"+popular+"/like", fanOne, map[string]interface{}{"likes": true})
	doJSON(r, http.MethodPost, "/api/articles/"+popular+"/like", fanTwo, map[string]interface{}{"likes": true})
	doJSON(r, http.MethodPost, "/api/articles/"+quiet+"/like", fanOne, map[string]interface{}{"likes": false})

	w := doJSON(r, http.MethodGet, "/api/articles/top?top=5", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	payload := decodeBody(t, w)
	articles := payload["articles"].([]interface{})
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1 (dislikes do not rank)", len(articles))
	}
	first := articles[0].(map[string]interface{})
	if first["slug"] != popular || first["likes"].(float64) != 2 {
		t.Errorf("top entry = %v, want slug=%s likes=2", first, popular)
	}
}
