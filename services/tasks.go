package services

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"MindPulseGo/models"
	"MindPulseGo/utils"

	"gorm.io/gorm"
)

// 任务难度
const (
	TaskDifficultyEasy   = "EASY"
	TaskDifficultyMedium = "MEDIUM"
	TaskDifficultyHard   = "HARD"
)

type taskTemplate struct {
	Name        string
	Description string
	Category    string
}

// 行为激活任务库，按难度分层
var taskLibrary = map[string][]taskTemplate{
	TaskDifficultyEasy: {
		{"喝一杯水", "起床后或现在喝一杯温水，滋润身体", "自我照顾"},
		{"深呼吸5次", "进行5次深呼吸，每次吸气4秒，呼气6秒", "放松练习"},
		{"整理床铺", "花2分钟整理床铺，创造整洁的空间", "日常活动"},
		{"听一首喜欢的歌", "选择一首让你感到平静或愉快的歌曲", "愉快活动"},
		{"向窗外看5分钟", "观察窗外的景色，注意天气、颜色和动态", "正念练习"},
		{"给朋友发一条消息", "向一位朋友发送简单的问候消息", "社交活动"},
		{"洗脸刷牙", "完成基本的个人卫生护理", "自我照顾"},
		{"伸展身体5分钟", "进行简单的伸展运动，活动筋骨", "身体活动"},
	},
	TaskDifficultyMedium: {
		{"散步15分钟", "到户外或室内走动15分钟，保持舒适节奏", "身体活动"},
		{"准备一顿简单的餐食", "为自己准备一份营养的简单餐食", "自我照顾"},
		{"整理一个小区域", "整理书桌、床头柜或一个抽屉", "日常活动"},
		{"阅读15分钟", "阅读一本书、杂志或文章15分钟", "愉快活动"},
		{"进行10分钟冥想", "使用冥想app或自主进行10分钟冥想", "放松练习"},
		{"给家人打电话", "与家人通话10-15分钟，分享近况", "社交活动"},
		{"写日记", "写下今天的感受和想法，不少于5分钟", "反思活动"},
		{"做一项家务", "洗碗、吸尘或整理衣物", "日常活动"},
	},
	TaskDifficultyHard: {
		{"锻炼30分钟", "进行30分钟的有氧运动，如跑步、游泳或骑车", "身体活动"},
		{"参加社交活动", "参加朋友聚会、兴趣小组或社区活动", "社交活动"},
		{"完成一项推迟的任务", "处理一直拖延的工作或个人事务", "目标导向"},
		{"学习新技能", "开始学习一项新技能或爱好，至少投入1小时", "愉快活动"},
		{"深度清洁一个房间", "彻底清洁和整理一个房间", "日常活动"},
		{"志愿服务", "参与志愿服务活动，帮助他人", "有意义活动"},
		{"外出探索", "到新的地方探索，如公园、博物馆或咖啡馆", "愉快活动"},
		{"参加团体课程", "参加瑜伽、舞蹈或其他团体课程", "身体活动"},
	},
}

// TaskRecommendation 推荐给用户的候选任务
type TaskRecommendation struct {
	Name                  string   `json:"name"`
	Description           string   `json:"description"`
	Category              string   `json:"category"`
	DifficultyLevel       string   `json:"difficultyLevel"`
	EstimatedDuration     string   `json:"estimatedDuration"`
	PreviousEffectiveness *float64 `json:"previousEffectiveness,omitempty"`
}

// TaskSummary 历史任务的一行摘要
type TaskSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Completed   bool   `json:"completed"`
	AssignedAt  string `json:"assignedAt"`
	CompletedAt string `json:"completedAt,omitempty"`
	Rating      *int   `json:"rating,omitempty"`
}

// TaskHistory 任务完成情况统计
type TaskHistory struct {
	TotalTasks             int              `json:"totalTasks"`
	CompletedTasks         int              `json:"completedTasks"`
	CompletionRate         float64          `json:"completionRate"`
	AverageRating          float64          `json:"averageRating"`
	AverageMoodImprovement float64          `json:"averageMoodImprovement"`
	CategoryBreakdown      map[string]int   `json:"categoryBreakdown"`
	RecentTasks            []TaskSummary    `json:"recentTasks"`
}

// TopTask 情绪提升效果最好的任务
type TopTask struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	MoodImprovement float64 `json:"moodImprovement"`
	Rating          *int    `json:"rating,omitempty"`
}

// BehavioralTaskService 行为激活任务的生成、分配与统计。
// 难度由最新评估分数决定，分数低且有完成记录时逐步加大难度。
type BehavioralTaskService struct {
	db   *gorm.DB
	rand *rand.Rand
}

func NewBehavioralTaskService(db *gorm.DB) *BehavioralTaskService {
	return &BehavioralTaskService{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GeneratePersonalizedTasks 生成count个候选任务，排除最近5次分配过的任务名
func (s *BehavioralTaskService) GeneratePersonalizedTasks(userID string, count int) ([]TaskRecommendation, error) {
	difficulty, err := s.determineDifficulty(userID)
	if err != nil {
		return nil, err
	}

	var completedTasks []models.BehavioralTask
	if err := s.db.Where("user_id = ?", userID).
		Order("assigned_at DESC").Find(&completedTasks).Error; err != nil {
		return nil, fmt.Errorf("查询任务记录失败: %w", err)
	}

	effectiveness := taskEffectiveness(completedTasks)

	recentNames := make(map[string]bool)
	for i, t := range completedTasks {
		if i >= 5 {
			break
		}
		recentNames[t.TaskName] = true
	}

	available := taskLibrary[difficulty]
	var candidates []taskTemplate
	for _, t := range available {
		if !recentNames[t.Name] {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		candidates = available
	}

	s.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	var recommendations []TaskRecommendation
	for i := 0; i < count && i < len(candidates); i++ {
		rec := TaskRecommendation{
			Name:              candidates[i].Name,
			Description:       candidates[i].Description,
			Category:          candidates[i].Category,
			DifficultyLevel:   difficulty,
			EstimatedDuration: estimateDuration(difficulty),
		}
		if improvement, ok := effectiveness[candidates[i].Name]; ok {
			rounded := round1(improvement)
			rec.PreviousEffectiveness = &rounded
		}
		recommendations = append(recommendations, rec)
	}

	return recommendations, nil
}

func (s *BehavioralTaskService) determineDifficulty(userID string) (string, error) {
	var latest models.AssessmentRecord
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").First(&latest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return TaskDifficultyEasy, nil
		}
		return "", fmt.Errorf("查询评估记录失败: %w", err)
	}

	switch {
	case latest.TotalScore >= 15:
		return TaskDifficultyEasy, nil
	case latest.TotalScore >= 8:
		return TaskDifficultyMedium, nil
	default:
		var completedCount int64
		s.db.Model(&models.BehavioralTask{}).
			Where("user_id = ? AND completed = ?", userID, true).Count(&completedCount)
		if completedCount >= 3 {
			return TaskDifficultyHard, nil
		}
		return TaskDifficultyMedium, nil
	}
}

// taskEffectiveness 按任务名统计历史情绪提升幅度
func taskEffectiveness(tasks []models.BehavioralTask) map[string]float64 {
	effectiveness := make(map[string]float64)
	for _, t := range tasks {
		if t.Completed && t.MoodBefore != nil && t.MoodAfter != nil {
			effectiveness[t.TaskName] = *t.MoodAfter - *t.MoodBefore
		}
	}
	return effectiveness
}

func estimateDuration(difficulty string) string {
	switch difficulty {
	case TaskDifficultyEasy:
		return "2-5分钟"
	case TaskDifficultyMedium:
		return "10-20分钟"
	case TaskDifficultyHard:
		return "30-60分钟"
	default:
		return "5-10分钟"
	}
}

// AssignTask 分配任务并记录任务前情绪
func (s *BehavioralTaskService) AssignTask(userID, taskName, taskDescription, difficultyLevel, category string, moodBefore *float64) (*models.BehavioralTask, error) {
	task := models.BehavioralTask{
		ID:              utils.GenerateID(),
		UserID:          userID,
		TaskName:        taskName,
		TaskDescription: taskDescription,
		DifficultyLevel: difficultyLevel,
		Category:        category,
		MoodBefore:      moodBefore,
		AssignedAt:      time.Now(),
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("分配任务失败: %w", err)
	}
	return &task, nil
}

// CompleteTask 标记任务完成，记录评分、反馈与任务后情绪
func (s *BehavioralTaskService) CompleteTask(taskID string, rating *int, feedback string, moodAfter *float64) (*models.BehavioralTask, error) {
	var task models.BehavioralTask
	if err := s.db.Where("id = ?", taskID).First(&task).Error; err != nil {
		return nil, fmt.Errorf("任务不存在: %w", err)
	}

	now := time.Now()
	task.Completed = true
	task.CompletionRating = rating
	task.Feedback = feedback
	task.MoodAfter = moodAfter
	task.CompletedAt = &now

	if err := s.db.Save(&task).Error; err != nil {
		return nil, fmt.Errorf("更新任务失败: %w", err)
	}
	return &task, nil
}

// GetTaskHistory 汇总任务完成率、平均评分与情绪提升
func (s *BehavioralTaskService) GetTaskHistory(userID string) (*TaskHistory, error) {
	var tasks []models.BehavioralTask
	if err := s.db.Where("user_id = ?", userID).
		Order("assigned_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("查询任务记录失败: %w", err)
	}

	history := &TaskHistory{
		TotalTasks:        len(tasks),
		CategoryBreakdown: make(map[string]int),
		RecentTasks:       []TaskSummary{},
	}

	ratingSum, ratingCount := 0, 0
	moodSum, moodCount := 0.0, 0

	for _, t := range tasks {
		if t.Completed {
			history.CompletedTasks++
			if t.CompletionRating != nil {
				ratingSum += *t.CompletionRating
				ratingCount++
			}
			if t.MoodBefore != nil && t.MoodAfter != nil {
				moodSum += *t.MoodAfter - *t.MoodBefore
				moodCount++
			}
		}
		history.CategoryBreakdown[t.Category]++
	}

	if history.TotalTasks > 0 {
		history.CompletionRate = round1(float64(history.CompletedTasks) * 100.0 / float64(history.TotalTasks))
	}
	if ratingCount > 0 {
		history.AverageRating = round1(float64(ratingSum) / float64(ratingCount))
	}
	if moodCount > 0 {
		history.AverageMoodImprovement = round1(moodSum / float64(moodCount))
	}

	for i, t := range tasks {
		if i >= 10 {
			break
		}
		summary := TaskSummary{
			ID:         t.ID,
			Name:       t.TaskName,
			Category:   t.Category,
			Completed:  t.Completed,
			AssignedAt: t.AssignedAt.Format(time.RFC3339),
		}
		if t.Completed && t.CompletedAt != nil {
			summary.CompletedAt = t.CompletedAt.Format(time.RFC3339)
			summary.Rating = t.CompletionRating
		}
		history.RecentTasks = append(history.RecentTasks, summary)
	}

	return history, nil
}

// GetTopPerformingTasks 按情绪提升幅度排序的任务
func (s *BehavioralTaskService) GetTopPerformingTasks(userID string, limit int) ([]TopTask, error) {
	var tasks []models.BehavioralTask
	if err := s.db.Where("user_id = ? AND completed = ?", userID, true).
		Order("assigned_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("查询任务记录失败: %w", err)
	}

	var scored []TopTask
	for _, t := range tasks {
		if t.MoodBefore == nil || t.MoodAfter == nil {
			continue
		}
		scored = append(scored, TopTask{
			Name:            t.TaskName,
			Category:        t.Category,
			MoodImprovement: round1(*t.MoodAfter - *t.MoodBefore),
			Rating:          t.CompletionRating,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MoodImprovement > scored[j].MoodImprovement
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
