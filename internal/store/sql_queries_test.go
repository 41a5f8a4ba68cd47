package store

import (
	"strings"
	"testing"

	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

func TestBuildListImagesQuery_NoFilter(t *testing.T) {
	query, args, err := buildListImagesQuery(models.ImageFilter{}).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
	if strings.Contains(query, "WHERE") {
		t.Errorf("expected no WHERE clause, got %s", query)
	}
	if !strings.Contains(query, "ORDER BY uploaded_at DESC") {
		t.Errorf("expected newest-first ordering, got %s", query)
	}
}

func TestBuildListImagesQuery_FullFilter(t *testing.T) {
	filter := models.ImageFilter{UploadedBy: 3, Limit: 10, Offset: 20}

	query, args, err := buildListImagesQuery(filter).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 arg, got %v", args)
	}
	if !strings.Contains(query, "uploaded_by = $1") {
		t.Errorf("expected uploaded_by predicate, got %s", query)
	}
	if !strings.Contains(query, "LIMIT 10") || !strings.Contains(query, "OFFSET 20") {
		t.Errorf("expected pagination clauses, got %s", query)
	}
}

func TestBuildListClassificationsQuery_AllPredicates(t *testing.T) {
	filter := models.ClassificationFilter{
		ImageID: 2,
		Stage:   "stage1",
		UserID:  1,
		Page:    3,
		Limit:   5,
	}

	query, args, err := buildListClassificationsQuery(filter).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if !strings.Contains(query, "image_id = $1") {
		t.Errorf("expected image_id predicate, got %s", query)
	}
	if !strings.Contains(query, "OFFSET 10") {
		t.Errorf("expected page 3 with limit 5 to start at offset 10, got %s", query)
	}
}

func TestBuildCountClassificationsQuery_SharesPredicates(t *testing.T) {
	filter := models.ClassificationFilter{Stage: "normal", Page: 7, Limit: 5}

	query, args, err := buildCountClassificationsQuery(filter).ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 1 || args[0] != "normal" {
		t.Fatalf("expected single stage arg, got %v", args)
	}
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "OFFSET") {
		t.Errorf("count query must ignore pagination, got %s", query)
	}
}

func TestBuildUpdateClassificationQuery_PartialFields(t *testing.T) {
	stage := "stage4"

	query, args, err := buildUpdateClassificationQuery(models.ClassificationUpdate{
		ClassificationID: 10,
		Stage:            &stage,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(query, "stage = $1") {
		t.Errorf("expected stage SET clause, got %s", query)
	}
	if strings.Contains(query, "observations") {
		t.Errorf("expected observations untouched, got %s", query)
	}
	if !strings.Contains(query, "RETURNING classification_id") {
		t.Errorf("expected RETURNING clause, got %s", query)
	}
	if len(args) != 2 {
		t.Errorf("expected stage and id args, got %v", args)
	}
}

func TestBuildUpdateClassificationQuery_Empty(t *testing.T) {
	_, _, err := buildUpdateClassificationQuery(models.ClassificationUpdate{ClassificationID: 10})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
}
