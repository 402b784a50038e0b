package blog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gurukulhq/gurukul/internal/identity"
)

const englishPost = `---
title: Gita for Beginners
slug: gita-for-beginners
excerpt: A gentle start.
category: scripture
author: Acharya Dev
locale: en
home: true
---
The **Gita** rewards slow reading.
`

const hindiPost = `---
title: गीता प्रारंभ
slug: gita-for-beginners
locale: hi
---
गीता धीमे पठन का फल देती है।
`

func TestParseDocumentDerivesSlugFromTitle(t *testing.T) {
	source := "---\ntitle: Morning Chants\n---\nOm.\n"
	doc, err := ParseDocument([]byte(source), time.Now())
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	if doc.Slug != "morning-chants" {
		t.Fatalf("expected derived slug, got %q", doc.Slug)
	}
	if doc.Locale != "en" {
		t.Fatalf("expected default locale, got %q", doc.Locale)
	}
}

func TestImportMergesLocalesIntoOnePost(t *testing.T) {
	repo := NewMemoryPostRepository()
	imp := NewImporter(repo)
	ctx := context.Background()

	docEN, err := ParseDocument([]byte(englishPost), time.Now())
	if err != nil {
		t.Fatalf("parse en: %v", err)
	}
	docHI, err := ParseDocument([]byte(hindiPost), time.Now())
	if err != nil {
		t.Fatalf("parse hi: %v", err)
	}

	result, err := imp.ImportDocuments(ctx, []*Document{docEN, docHI})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Created != 1 || result.Updated != 0 {
		t.Fatalf("expected one created post, got %+v", result)
	}

	post, err := repo.GetByID(ctx, identity.PostUUID("gita-for-beginners"))
	if err != nil {
		t.Fatalf("get imported post: %v", err)
	}
	if got := post.Title.Resolve("hi"); got != "गीता प्रारंभ" {
		t.Fatalf("expected hindi title, got %q", got)
	}
	if !post.ShowOnHome {
		t.Fatal("expected home flag from english source")
	}
	if !strings.Contains(post.Body.Resolve("en"), "Gita") {
		t.Fatalf("expected english body, got %q", post.Body.Resolve("en"))
	}
}

func TestImportIsIdempotent(t *testing.T) {
	repo := NewMemoryPostRepository()
	imp := NewImporter(repo)
	ctx := context.Background()

	doc, err := ParseDocument([]byte(englishPost), time.Now())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if _, err := imp.ImportDocuments(ctx, []*Document{doc}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	result, err := imp.ImportDocuments(ctx, []*Document{doc})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 {
		t.Fatalf("expected reimport to update in place, got %+v", result)
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected a single post after reimport, got %d", len(posts))
	}
}

func TestRenderSanitizesHTML(t *testing.T) {
	renderer := NewRenderer()

	html, err := renderer.Render("# Heading\n\n<script>alert(1)</script>\n\n*emphasis*")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected script stripped, got %q", html)
	}
	if !strings.Contains(html, "<em>emphasis</em>") {
		t.Fatalf("expected markdown emphasis rendered, got %q", html)
	}
}
