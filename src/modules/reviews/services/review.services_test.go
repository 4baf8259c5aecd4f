package reviews

import (
	"cinelog/src/config"
	movies "cinelog/src/modules/movies/models"
	lib "cinelog/src/modules/reviews/lib"
	models "cinelog/src/modules/reviews/models"
	users "cinelog/src/modules/users/models"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.DB = db
	return db
}

func createTestUser(t *testing.T, username string) users.User {
	t.Helper()
	user := users.User{Username: username}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createTestMovie(t *testing.T, title, slug string) movies.Movie {
	t.Helper()
	movie := movies.Movie{Title: title, Slug: slug}
	if err := config.DB.Create(&movie).Error; err != nil {
		t.Fatalf("failed to create movie %s: %v", title, err)
	}
	return movie
}

func TestCreateReviewSetsAuthor(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")

	res, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 5, Title: "Great"}, alice)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}

	if res.User != "alice" {
		t.Errorf("user = %q, want the author's display name", res.User)
	}
	if res.LikesCount != 0 {
		t.Errorf("likes_count = %d, want 0 on a fresh review", res.LikesCount)
	}
}

func TestSecondReviewForSamePairRejected(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	first, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 3}, alice)
	if e != nil {
		t.Fatalf("first create failed: %v", e)
	}

	// Same (movie, user) pair fails.
	_, e = CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 4}, alice)
	if e == nil || e.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected a validation error for a duplicate pair, got %v", e)
	}

	// A different user may still review the movie.
	if _, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 4}, bob); e != nil {
		t.Errorf("another user's review should succeed: %v", e)
	}

	// Updating the existing review for the pair succeeds.
	updated, e := UpdateReview(first.ID, lib.ReviewInput{Movie: movie.ID, Rating: 5})
	if e != nil {
		t.Fatalf("update failed: %v", e)
	}
	if updated.Rating != 5 {
		t.Errorf("rating = %d, want 5 after update", updated.Rating)
	}
}

func TestRatingBoundsEnforcedByStorage(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")

	for _, rating := range []int{0, 6} {
		review := models.Review{MovieID: movie.ID, UserID: alice.ID, Rating: rating}
		if err := config.DB.Create(&review).Error; err == nil {
			t.Errorf("rating %d should be rejected at the storage boundary", rating)
		}
	}

	for i, rating := range []int{1, 5} {
		user := createTestUser(t, fmt.Sprintf("user-%d", i))
		if _, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: rating}, user); e != nil {
			t.Errorf("rating %d should be accepted: %v", rating, e)
		}
	}
}

func TestCreateReviewUnknownMovie(t *testing.T) {
	setupTestDB(t)

	alice := createTestUser(t, "alice")
	_, e := CreateReview(lib.ReviewInput{Movie: 999, Rating: 3}, alice)
	if e == nil || e.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected a validation error for an unknown movie, got %v", e)
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")
	created, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 3}, alice)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}

	time.Sleep(10 * time.Millisecond)

	body := "second thoughts"
	patched, e := PatchReview(created.ID, lib.ReviewUpdateInput{Body: &body})
	if e != nil {
		t.Fatalf("patch failed: %v", e)
	}

	if !patched.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at %v should be after %v", patched.UpdatedAt, created.UpdatedAt)
	}
	if patched.Rating != 3 {
		t.Errorf("rating = %d, want unchanged 3", patched.Rating)
	}
	if patched.Body != "second thoughts" {
		t.Errorf("body = %q, want applied", patched.Body)
	}
}

func TestLikeUnlikeIdempotent(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	created, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 4}, alice)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}

	res, e := LikeReview(created.ID, bob)
	if e != nil {
		t.Fatalf("like failed: %v", e)
	}
	if res.LikesCount != 1 {
		t.Errorf("likes_count = %d, want 1", res.LikesCount)
	}

	// Liking again must not double count.
	res, e = LikeReview(created.ID, bob)
	if e != nil {
		t.Fatalf("second like failed: %v", e)
	}
	if res.LikesCount != 1 {
		t.Errorf("likes_count after repeat like = %d, want 1", res.LikesCount)
	}

	res, e = UnlikeReview(created.ID, bob)
	if e != nil {
		t.Fatalf("unlike failed: %v", e)
	}
	if res.LikesCount != 0 {
		t.Errorf("likes_count after unlike = %d, want 0", res.LikesCount)
	}

	// Unliking a review that was never liked is a no-op.
	if _, e := UnlikeReview(created.ID, alice); e != nil {
		t.Errorf("unlike without a prior like should succeed: %v", e)
	}
}

func TestDeleteReviewLeavesMovieAndOthers(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	doomed, _ := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 2}, alice)
	survivor, _ := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 5}, bob)

	if e := DeleteReview(doomed.ID); e != nil {
		t.Fatalf("delete failed: %v", e)
	}

	if _, e := GetReview(doomed.ID); e == nil || e.StatusCode != http.StatusNotFound {
		t.Errorf("deleted review should be gone, got %v", e)
	}
	if _, e := GetReview(survivor.ID); e != nil {
		t.Errorf("other review should survive: %v", e)
	}
	var movieCount int64
	config.DB.Model(&movies.Movie{}).Count(&movieCount)
	if movieCount != 1 {
		t.Errorf("movie count = %d, want 1", movieCount)
	}
}

func TestListReviewsNewestFirst(t *testing.T) {
	setupTestDB(t)

	movie := createTestMovie(t, "Heat", "heat")
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")
	if _, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 2}, alice); e != nil {
		t.Fatalf("create failed: %v", e)
	}
	time.Sleep(10 * time.Millisecond)
	latest, e := CreateReview(lib.ReviewInput{Movie: movie.ID, Rating: 4}, bob)
	if e != nil {
		t.Fatalf("create failed: %v", e)
	}

	list, e := ListReviews()
	if e != nil {
		t.Fatalf("list failed: %v", e)
	}
	if len(list) != 2 {
		t.Fatalf("got %d reviews, want 2", len(list))
	}
	if list[0].ID != latest.ID {
		t.Errorf("first review = %d, want the newest %d", list[0].ID, latest.ID)
	}
}
