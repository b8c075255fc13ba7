package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress-dev/inkpress/internal/types"
)

func addComment(t *testing.T, r *gin.Engine, token string, postID uint, body string) types.CommentResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), token, map[string]string{
		"body": body,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("create comment returned %d: %s", w.Code, w.Body.String())
	}

	var comment types.CommentResponse
	decodeJSON(t, w, &comment)

	return comment
}

func listComments(t *testing.T, r *gin.Engine, postID uint) []types.CommentResponse {
	t.Helper()

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("list comments returned %d: %s", w.Code, w.Body.String())
	}

	var comments []types.CommentResponse
	decodeJSON(t, w, &comments)

	return comments
}

func TestCommentLifecycle(t *testing.T) {
	r := setupTestRouter(t)

	user := registerUser(t, r, "demo@ghost.local", "Demo", "Demo123!")
	post := createPost(t, r, user.AccessToken, "Hello", "World")

	comment := addComment(t, r, user.AccessToken, post.ID, "Nice!")

	if comment.Body != "Nice!" {
		t.Errorf("comment body = %q, want Nice!", comment.Body)
	}

	if comment.Author.ID != user.User.ID {
		t.Errorf("comment author = %d, want %d", comment.Author.ID, user.User.ID)
	}

	comments := listComments(t, r, post.ID)

	if len(comments) != 1 || comments[0].Body != "Nice!" {
		t.Fatalf("comments = %+v, want the one comment", comments)
	}

	// Deleting the comment leaves the parent post intact.
	w := doRequest(t, r, http.MethodDelete,
		fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, comment.ID), user.AccessToken, nil)

	if w.Code != http.StatusNoContent {
		t.Fatalf("delete comment returned %d: %s", w.Code, w.Body.String())
	}

	if got := listComments(t, r, post.ID); len(got) != 0 {
		t.Errorf("comments after delete = %d, want 0", len(got))
	}

	if w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil); w.Code != http.StatusOK {
		t.Errorf("parent post gone after comment delete: %d", w.Code)
	}
}

func TestCommentsNewestFirst(t *testing.T) {
	r := setupTestRouter(t)

	user := registerUser(t, r, "demo@ghost.local", "Demo", "Demo123!")
	post := createPost(t, r, user.AccessToken, "Hello", "World")

	addComment(t, r, user.AccessToken, post.ID, "first")
	time.Sleep(10 * time.Millisecond)
	addComment(t, r, user.AccessToken, post.ID, "second")

	comments := listComments(t, r, post.ID)

	if len(comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(comments))
	}

	if comments[0].Body != "second" || comments[1].Body != "first" {
		t.Errorf("ordering wrong: %q, %q", comments[0].Body, comments[1].Body)
	}
}

func TestCommentOnMissingPost(t *testing.T) {
	r := setupTestRouter(t)

	user := registerUser(t, r, "demo@ghost.local", "Demo", "Demo123!")

	w := doRequest(t, r, http.MethodPost, "/api/posts/9999/comments", user.AccessToken, map[string]string{
		"body": "talking to nobody",
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("comment on missing post returned %d, want 404", w.Code)
	}

	if w := doRequest(t, r, http.MethodGet, "/api/posts/9999/comments", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("list comments of missing post returned %d, want 404", w.Code)
	}
}

func TestCommentOwnership(t *testing.T) {
	r := setupTestRouter(t)

	alice := registerUser(t, r, "alice@ghost.local", "Alice", "password1")
	bob := registerUser(t, r, "bob@ghost.local", "Bob", "password2")

	post := createPost(t, r, alice.AccessToken, "Alice's post", "content")

	// Any authenticated user may comment on any post.
	comment := addComment(t, r, bob.AccessToken, post.ID, "Bob was here")

	path := fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, comment.ID)

	// Only the comment's author may delete it, even on their own post.
	if w := doRequest(t, r, http.MethodDelete, path, alice.AccessToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("delete as post owner returned %d, want 403", w.Code)
	}

	if w := doRequest(t, r, http.MethodDelete, path, bob.AccessToken, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete as comment author returned %d, want 204", w.Code)
	}

	if w := doRequest(t, r, http.MethodDelete, path, bob.AccessToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("delete of deleted comment returned %d, want 404", w.Code)
	}
}

func TestDeleteCommentWrongPost(t *testing.T) {
	r := setupTestRouter(t)

	user := registerUser(t, r, "demo@ghost.local", "Demo", "Demo123!")

	first := createPost(t, r, user.AccessToken, "First", "content")
	second := createPost(t, r, user.AccessToken, "Second", "content")

	comment := addComment(t, r, user.AccessToken, first.ID, "on the first post")

	// The comment id exists, but not under that post.
	w := doRequest(t, r, http.MethodDelete,
		fmt.Sprintf("/api/posts/%d/comments/%d", second.ID, comment.ID), user.AccessToken, nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("delete via wrong post returned %d, want 404", w.Code)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	r := setupTestRouter(t)

	user := registerUser(t, r, "demo@ghost.local", "Demo", "Demo123!")
	post := createPost(t, r, user.AccessToken, "Hello", "World")

	for _, body := range []map[string]string{{"body": ""}, {"body": "   "}} {
		w := doRequest(t, r, http.MethodPost,
			fmt.Sprintf("/api/posts/%d/comments", post.ID), user.AccessToken, body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("create comment %v returned %d, want 400", body, w.Code)
		}
	}
}
