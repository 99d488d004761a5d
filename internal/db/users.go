package db

import (
	"database/sql"
	"fmt"

	"github.com/healpraybackend/internal/models"
)

// GetUser loads the notification token and preferences for one user. A
// missing token comes back as an empty string, not an error.
func GetUser(userID string) (*models.User, error) {
	var user models.User
	var token sql.NullString
	err := DB.QueryRow(
		"SELECT id, email, fcm_token, morning_notifications FROM users WHERE id = $1",
		userID,
	).Scan(&user.ID, &user.Email, &token, &user.MorningNotifications)
	if err != nil {
		return nil, fmt.Errorf("error fetching user %s: %v", userID, err)
	}
	user.FCMToken = token.String
	return &user, nil
}

// MergeAnalytics upserts the mood analytics fields on the user row. Only
// the analytics columns are written so concurrent updates to unrelated
// user fields are never clobbered.
func MergeAnalytics(userID string, a models.UserAnalytics) error {
	result, err := DB.Exec(
		`UPDATE users SET
			average_mood = $2,
			consecutive_low_moods = $3,
			trend_direction = $4,
			risk_level = $5,
			last_analysis_at = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`,
		userID, a.AverageMood, a.ConsecutiveLowMoods, a.TrendDirection, a.RiskLevel, a.LastAnalysisAt,
	)
	if err != nil {
		return fmt.Errorf("error merging analytics for user %s: %v", userID, err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("user %s not found", userID)
	}

	return nil
}

// MorningOptIns returns users opted into morning notifications that have a
// notification token on file.
func MorningOptIns() ([]models.User, error) {
	rows, err := DB.Query(
		`SELECT id, email, fcm_token FROM users
		WHERE morning_notifications = TRUE AND fcm_token IS NOT NULL AND fcm_token <> ''`,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying morning opt-ins: %v", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.FCMToken); err != nil {
			return nil, fmt.Errorf("error scanning user row: %v", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
