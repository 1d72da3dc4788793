// internal/services/feedback_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eterials/menu-backend/internal/models"
)

func newFeedbackFixture(t *testing.T) (*FeedbackService, *SessionService, uint) {
	db := newTestDB(t)
	settings := NewSettingsService(db)
	sessions := NewSessionService(db, settings)
	feedback := NewFeedbackService(db, sessions, settings)

	result, err := sessions.StartSession(&StartSessionRequest{Table: "5"}, "")
	require.NoError(t, err)
	return feedback, sessions, result.Session.ID
}

func TestSubmitRatingUpsertsPerCategory(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	first, err := feedback.SubmitRating(&SubmitRatingRequest{
		SessionID: sessionID,
		Stars:     3,
		Category:  models.RatingCategoryFood,
	})
	require.NoError(t, err)

	second, err := feedback.SubmitRating(&SubmitRatingRequest{
		SessionID: sessionID,
		Stars:     5,
		Category:  models.RatingCategoryFood,
	})
	require.NoError(t, err)

	// Same row, new stars.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Stars)

	// A different category gets its own row.
	other, err := feedback.SubmitRating(&SubmitRatingRequest{
		SessionID: sessionID,
		Stars:     4,
		Category:  models.RatingCategoryService,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	ratings, err := feedback.ListRatings(10)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}

func TestSubmitRatingValidatesStars(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	var validationErr *ValidationError
	for _, stars := range []int{0, 6, -1} {
		_, err := feedback.SubmitRating(&SubmitRatingRequest{SessionID: sessionID, Stars: stars})
		require.ErrorAs(t, err, &validationErr, "stars %d", stars)
	}
}

func TestSubmitRatingRequiresLiveSession(t *testing.T) {
	feedback, sessions, sessionID := newFeedbackFixture(t)

	_, err := sessions.CloseSession(sessionID)
	require.NoError(t, err)

	_, err = feedback.SubmitRating(&SubmitRatingRequest{SessionID: sessionID, Stars: 4})
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	_, err = feedback.SubmitRating(&SubmitRatingRequest{SessionID: 999, Stars: 4})
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestSubmitCommentAppendsOnly(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	_, err := feedback.SubmitComment(&SubmitCommentRequest{SessionID: sessionID, Text: "Muy rico"})
	require.NoError(t, err)
	_, err = feedback.SubmitComment(&SubmitCommentRequest{SessionID: sessionID, Text: "Volveré", Kind: models.CommentKindPraise})
	require.NoError(t, err)

	comments, err := feedback.ListComments(10)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	_, err = feedback.SubmitComment(&SubmitCommentRequest{SessionID: sessionID, Text: "   "})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestResolveNotificationIsOneWay(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	notification, err := feedback.NotifyStaff(&NotifyStaffRequest{
		SessionID: sessionID,
		Kind:      models.NotificationKindCallWaiter,
	})
	require.NoError(t, err)
	assert.False(t, notification.Resolved)

	resolved, err := feedback.ResolveNotification(notification.ID, "carlos")
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	assert.Equal(t, "carlos", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	_, err = feedback.ResolveNotification(notification.ID, "maria")
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestEmergencyNotificationForcesUrgentPriority(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	notification, err := feedback.NotifyStaff(&NotifyStaffRequest{
		SessionID: sessionID,
		Kind:      models.NotificationKindEmergency,
		Priority:  models.PriorityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityUrgent, notification.Priority)
}

func TestPendingNotificationsOrderedByPriority(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	_, err := feedback.NotifyStaff(&NotifyStaffRequest{
		SessionID: sessionID,
		Kind:      models.NotificationKindCallWaiter,
	})
	require.NoError(t, err)

	_, err = feedback.NotifyStaff(&NotifyStaffRequest{
		SessionID: sessionID,
		Kind:      models.NotificationKindEmergency,
	})
	require.NoError(t, err)

	pending, err := feedback.ListPendingNotifications()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, models.PriorityUrgent, pending[0].Priority)
}

func TestFeedbackStatsAggregates(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	_, err := feedback.SubmitRating(&SubmitRatingRequest{SessionID: sessionID, Stars: 4, Category: models.RatingCategoryFood})
	require.NoError(t, err)
	_, err = feedback.SubmitRating(&SubmitRatingRequest{SessionID: sessionID, Stars: 2, Category: models.RatingCategoryService})
	require.NoError(t, err)

	stats, err := feedback.GetStats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalRatings)
	assert.InDelta(t, 3.0, stats.AverageStars, 0.001)
	assert.InDelta(t, 4.0, stats.ByCategory["comida"], 0.001)
}

func TestAnalyticsSummaryCountsEvents(t *testing.T) {
	feedback, _, sessionID := newFeedbackFixture(t)

	_, err := feedback.SubmitRating(&SubmitRatingRequest{SessionID: sessionID, Stars: 5})
	require.NoError(t, err)

	rows, err := feedback.AnalyticsSummary(7)
	require.NoError(t, err)

	found := false
	for _, row := range rows {
		if row.Event == "calificacion" {
			found = true
			assert.EqualValues(t, 1, row.Count)
			assert.InDelta(t, 5.0, row.Average, 0.001)
		}
	}
	assert.True(t, found, "expected a calificacion event row")
}
