package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
)

func validPost() *domain.ForumPost {
	return &domain.ForumPost{
		Title:   "Morning routines",
		Content: "What do you do before a 6am class?",
		Author:  "Ann",
		Email:   "ann@mail.io",
		Role:    domain.RoleUser,
	}
}

func TestCreatePostZeroesCounters(t *testing.T) {
	svc := NewForumService(newFakePostRepo())

	p := validPost()
	p.Upvotes = 99
	p.Downvotes = 42
	post, err := svc.CreatePost(context.Background(), p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Upvotes != 0 || post.Downvotes != 0 {
		t.Errorf("counters = %d/%d, want 0/0", post.Upvotes, post.Downvotes)
	}
	if post.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}

	incomplete := validPost()
	incomplete.Content = ""
	if _, err := svc.CreatePost(context.Background(), incomplete); !errors.Is(err, ErrPostIncomplete) {
		t.Errorf("incomplete post: err = %v, want ErrPostIncomplete", err)
	}
}

func TestVote(t *testing.T) {
	svc := NewForumService(newFakePostRepo())
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validPost())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Vote(ctx, post.ID.Hex(), domain.VoteUp)
	if err != nil {
		t.Fatalf("upvote: %v", err)
	}
	if updated.Upvotes != 1 || updated.Downvotes != 0 {
		t.Errorf("after upvote: %d/%d, want 1/0", updated.Upvotes, updated.Downvotes)
	}

	updated, err = svc.Vote(ctx, post.ID.Hex(), domain.VoteDown)
	if err != nil {
		t.Fatalf("downvote: %v", err)
	}
	if updated.Upvotes != 1 || updated.Downvotes != 1 {
		t.Errorf("after downvote: %d/%d, want 1/1", updated.Upvotes, updated.Downvotes)
	}

	if _, err := svc.Vote(ctx, post.ID.Hex(), "sideways"); !errors.Is(err, ErrInvalidVote) {
		t.Errorf("bad vote type: err = %v, want ErrInvalidVote", err)
	}
	if _, err := svc.Vote(ctx, "bogus", domain.VoteUp); !errors.Is(err, ErrInvalidObjectID) {
		t.Errorf("bad id: err = %v, want ErrInvalidObjectID", err)
	}
	if _, err := svc.Vote(ctx, "65a000000000000000000000", domain.VoteUp); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("missing post: err = %v, want ErrPostNotFound", err)
	}
}

func TestGetPost(t *testing.T) {
	svc := NewForumService(newFakePostRepo())
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, validPost())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetPost(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("title = %q, want %q", got.Title, post.Title)
	}

	if _, err := svc.GetPost(ctx, "65a000000000000000000000"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("missing post: err = %v, want ErrPostNotFound", err)
	}
}
