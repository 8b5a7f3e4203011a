package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"MindPulseGo/config"
	"MindPulseGo/models"
	"MindPulseGo/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试用独立的内存数据库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.Logger = zap.NewNop().Sugar()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))
	return db
}

// seedAssessment 直接写入一条评估记录
func seedAssessment(t *testing.T, db *gorm.DB, userID, code string, answers []int, createdAt time.Time) models.AssessmentRecord {
	t.Helper()

	record := models.AssessmentRecord{
		ID:                utils.GenerateID(),
		UserID:            userID,
		QuestionnaireCode: code,
		CreatedAt:         createdAt,
	}
	record.SetAnswers(answers)
	record.Level = ScoreToLevel(record.TotalScore)
	require.NoError(t, db.Create(&record).Error)
	return record
}

// answersForScore 构造总分为score的9项答案向量
func answersForScore(t *testing.T, score int) []int {
	t.Helper()
	require.LessOrEqual(t, score, PHQ9MaxScore)

	answers := make([]int, PHQ9ItemCount)
	for i := 0; i < PHQ9ItemCount && score > 0; i++ {
		a := 3
		if score < 3 {
			a = score
		}
		answers[i] = a
		score -= a
	}
	return answers
}

func floatPtr(v float64) *float64 {
	return &v
}
