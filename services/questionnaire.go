package services

import (
	"fmt"

	"MindPulseGo/models"
	"MindPulseGo/utils"

	"gorm.io/gorm"
)

// QuestionnaireService 量表目录的初始化与查询
type QuestionnaireService struct {
	db *gorm.DB
}

func NewQuestionnaireService(db *gorm.DB) *QuestionnaireService {
	return &QuestionnaireService{db: db}
}

// InitializeDefaultQuestionnaires 目录为空时写入内置量表与题库
func (s *QuestionnaireService) InitializeDefaultQuestionnaires() error {
	var count int64
	if err := s.db.Model(&models.Questionnaire{}).Where("is_active = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("查询量表目录失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	questionnaires := []models.Questionnaire{
		{Code: "PHQ-9", Name: "患者健康问卷(PHQ-9)", Description: "用于筛查和测量抑郁症严重程度的9项问卷", Category: "抑郁症", TotalQuestions: 9, MaxScore: 27},
		{Code: "GAD-7", Name: "广泛性焦虑症量表(GAD-7)", Description: "用于筛查和测量广泛性焦虑症的7项问卷", Category: "焦虑症", TotalQuestions: 7, MaxScore: 21},
		{Code: "PSQI", Name: "匹兹堡睡眠质量指数", Description: "用于评估睡眠质量和睡眠障碍的19项问卷", Category: "睡眠障碍", TotalQuestions: 19, MaxScore: 100},
		{Code: "HAMA", Name: "汉密尔顿焦虑量表", Description: "用于评估焦虑症患者的严重程度的14项问卷", Category: "焦虑症", TotalQuestions: 14, MaxScore: 56},
		{Code: "HAMD", Name: "汉密尔顿抑郁量表", Description: "用于评估抑郁症患者的症状严重程度的17项问卷", Category: "抑郁症", TotalQuestions: 17, MaxScore: 54},
		{Code: "SAS", Name: "自评焦虑量表(SAS)", Description: "用于筛查和评估焦虑水平的20项自评量表", Category: "焦虑症", TotalQuestions: 20, MaxScore: 80},
		{Code: "SDS", Name: "自评抑郁量表(SDS)", Description: "用于筛查和评估抑郁水平的20项自评量表", Category: "抑郁症", TotalQuestions: 20, MaxScore: 80},
		{Code: "PCL-5", Name: "创伤后应激障碍清单", Description: "用于评估创伤后应激障碍症状的20项问卷", Category: "创伤应激", TotalQuestions: 20, MaxScore: 80},
		{Code: "MoCA", Name: "蒙特利尔认知评估", Description: "用于筛查轻度认知障碍的30项问卷", Category: "认知功能", TotalQuestions: 30, MaxScore: 30},
		{Code: "MOCA-BRIEF", Name: "简短蒙特利尔认知评估", Description: "用于快速筛查认知障碍的10项简化版本", Category: "认知功能", TotalQuestions: 10, MaxScore: 10},
	}
	for i := range questionnaires {
		questionnaires[i].ID = utils.GenerateID()
		questionnaires[i].IsActive = true
	}
	if err := s.db.Create(&questionnaires).Error; err != nil {
		return fmt.Errorf("初始化量表目录失败: %w", err)
	}

	return s.initializeQuestions()
}

func (s *QuestionnaireService) initializeQuestions() error {
	var count int64
	if err := s.db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return fmt.Errorf("查询题库失败: %w", err)
	}
	if count > 0 {
		return nil
	}

	phq9Texts := []string{
		"做事时提不起劲或没有兴趣",
		"感到心情低落、沮丧或绝望",
		"入睡困难、睡不安稳或睡眠过多",
		"感到疲惫或没有活力",
		"食欲不振或暴饮暴食",
		"感觉自己很糟或觉得自己很失败，让自己或家人失望",
		"对事物专注有困难，例如看报纸或看电视",
		"行动或说话速度变得缓慢或相反地感觉坐立不安、烦躁",
		"有不如死掉或用某种方式伤害自己的念头",
	}
	gad7Texts := []string{
		"感到紧张、焦虑或快要崩溃",
		"无法停止或控制担忧",
		"对各种各样的事情担忧过多",
		"很难放松下来",
		"由于不安而无法静坐",
		"变得容易烦恼或易怒",
		"感到害怕，好像有什么可怕的事情会发生",
	}

	var questions []models.Question
	for i, text := range phq9Texts {
		questions = append(questions, frequencyQuestion("PHQ-9", i+1, text))
	}
	for i, text := range gad7Texts {
		questions = append(questions, frequencyQuestion("GAD-7", i+1, text))
	}

	if err := s.db.Create(&questions).Error; err != nil {
		return fmt.Errorf("初始化题库失败: %w", err)
	}
	return nil
}

func frequencyQuestion(code string, number int, text string) models.Question {
	return models.Question{
		ID:                utils.GenerateID(),
		QuestionnaireCode: code,
		QuestionNumber:    number,
		Text:              text,
		Option0:           "完全没有",
		Option1:           "有几天",
		Option2:           "一半以上",
		Option3:           "几乎每天",
		MaxPoints:         3,
	}
}

// GetQuestions 返回某量表的题目，题库缺失时生成占位题
func (s *QuestionnaireService) GetQuestions(code string) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("questionnaire_code = ?", code).
		Order("question_number ASC").Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("查询题目失败: %w", err)
	}
	if len(questions) > 0 {
		return questions, nil
	}
	return s.placeholderQuestions(code)
}

func (s *QuestionnaireService) placeholderQuestions(code string) ([]models.Question, error) {
	questionnaire, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	placeholders := make([]models.Question, 0, questionnaire.TotalQuestions)
	for i := 1; i <= questionnaire.TotalQuestions; i++ {
		placeholders = append(placeholders, models.Question{
			ID:                utils.GenerateID(),
			QuestionnaireCode: code,
			QuestionNumber:    i,
			Text:              fmt.Sprintf("%s - 第%d题（预置问题，待自定义）", questionnaire.Name, i),
			Option0:           "完全没有",
			Option1:           "轻微",
			Option2:           "中等",
			Option3:           "严重",
			MaxPoints:         3,
		})
	}
	return placeholders, nil
}

// GetAllActive 按名称排序的启用量表
func (s *QuestionnaireService) GetAllActive() ([]models.Questionnaire, error) {
	var questionnaires []models.Questionnaire
	err := s.db.Where("is_active = ?", true).
		Order("name ASC").Find(&questionnaires).Error
	if err != nil {
		return nil, fmt.Errorf("查询量表目录失败: %w", err)
	}
	return questionnaires, nil
}

// Search 按关键词模糊搜索量表名称、编码与描述
func (s *QuestionnaireService) Search(keyword string) ([]models.Questionnaire, error) {
	if keyword == "" {
		return s.GetAllActive()
	}
	var questionnaires []models.Questionnaire
	pattern := "%" + keyword + "%"
	err := s.db.Where("is_active = ? AND (name LIKE ? OR code LIKE ? OR description LIKE ?)",
		true, pattern, pattern, pattern).
		Order("name ASC").Find(&questionnaires).Error
	if err != nil {
		return nil, fmt.Errorf("搜索量表失败: %w", err)
	}
	return questionnaires, nil
}

// GetByCode 按编码查询量表
func (s *QuestionnaireService) GetByCode(code string) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	if err := s.db.Where("code = ?", code).First(&questionnaire).Error; err != nil {
		return nil, fmt.Errorf("量表不存在: %w", err)
	}
	return &questionnaire, nil
}

// GetByCategory 按分类查询量表
func (s *QuestionnaireService) GetByCategory(category string) ([]models.Questionnaire, error) {
	var questionnaires []models.Questionnaire
	err := s.db.Where("category = ? AND is_active = ?", category, true).
		Order("name ASC").Find(&questionnaires).Error
	if err != nil {
		return nil, fmt.Errorf("查询量表失败: %w", err)
	}
	return questionnaires, nil
}
