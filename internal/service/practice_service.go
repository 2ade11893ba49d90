package service

import (
	"math"
	"time"

	"examprep_backend/internal/model"
	"examprep_backend/internal/repository"
	"examprep_backend/internal/util"
	"examprep_backend/pkg/logger"
	"examprep_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptInput 一次练习提交里的一道题
type AttemptInput struct {
	Correct      bool `json:"correct"`
	TimeTakenSec int  `json:"timeTakenSec"`
}

// PracticeResult 提交后的回执，带更新后的掌握数据
type PracticeResult struct {
	Mastery       *model.TopicMastery `json:"mastery"`
	CurrentStreak int                 `json:"currentStreak"`
}

// PracticeService 记录作答流水并滚动维护知识点掌握度，
// 它写下的数据就是规划引擎下一次读到的快照。
type PracticeService struct {
	UserRepo    *repository.UserRepository
	MasteryRepo *repository.TopicMasteryRepository
	AttemptRepo *repository.QuestionAttemptRepository
	now         func() time.Time
}

func NewPracticeService(
	userRepo *repository.UserRepository,
	masteryRepo *repository.TopicMasteryRepository,
	attemptRepo *repository.QuestionAttemptRepository,
) *PracticeService {
	return &PracticeService{
		UserRepo:    userRepo,
		MasteryRepo: masteryRepo,
		AttemptRepo: attemptRepo,
		now:         time.Now,
	}
}

// RecordAttempts 一次提交同一个知识点下的若干道题
func (s *PracticeService) RecordAttempts(userID uint, subject, chapter, topic, source string, attempts []AttemptInput) (*PracticeResult, error) {
	if len(attempts) == 0 {
		return nil, util.ErrNoAttempts
	}
	if source == "" {
		source = "practice"
	}
	now := s.now()

	rows := make([]model.QuestionAttempt, 0, len(attempts))
	correct := 0
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
		rows = append(rows, model.QuestionAttempt{
			UserID:       userID,
			Subject:      subject,
			Chapter:      chapter,
			Topic:        topic,
			Correct:      a.Correct,
			TimeTakenSec: a.TimeTakenSec,
			Source:       source,
		})
	}
	if err := s.AttemptRepo.CreateBatch(rows); err != nil {
		return nil, err
	}
	monitoring.PracticeAttempts.Add(float64(len(rows)))

	mastery, err := s.updateMastery(userID, subject, chapter, topic, len(attempts), correct, now)
	if err != nil {
		return nil, err
	}

	streak, err := s.advanceStreak(userID, now)
	if err != nil {
		return nil, err
	}

	// 全局准确率算不出来不挡提交
	if err := s.refreshOverallAccuracy(userID); err != nil {
		logger.Log.Warn("重算全局准确率失败", zap.Uint("userID", userID), zap.Error(err))
	}

	return &PracticeResult{Mastery: mastery, CurrentStreak: streak}, nil
}

func (s *PracticeService) updateMastery(userID uint, subject, chapter, topic string, attempted, correct int, now time.Time) (*model.TopicMastery, error) {
	row, err := s.MasteryRepo.Find(userID, subject, chapter, topic)
	if err == gorm.ErrRecordNotFound {
		row = &model.TopicMastery{
			UserID:  userID,
			Subject: subject,
			Chapter: chapter,
			Topic:   topic,
		}
	} else if err != nil {
		return nil, err
	}

	oldAccuracy := row.Accuracy
	existed := row.QuestionsAttempted > 0

	row.QuestionsAttempted += attempted
	row.CorrectCount += correct
	row.Accuracy = int(math.Round(float64(row.CorrectCount) * 100 / float64(row.QuestionsAttempted)))

	// 连着练还没起色就累加停滞天数，一旦提升归零
	if existed && row.Accuracy <= oldAccuracy {
		row.StuckDays++
	} else {
		row.StuckDays = 0
	}
	row.LastPracticed = &now

	if err := s.MasteryRepo.Upsert(row); err != nil {
		return nil, err
	}
	return row, nil
}

// advanceStreak 昨天也练了就加一，断档重新从 1 起，同一天重复提交不变
func (s *PracticeService) advanceStreak(userID uint, now time.Time) (int, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return 0, err
	}

	streak := user.CurrentStreak
	today := now.Format(util.DateFormat)
	switch {
	case user.LastActiveDate == nil:
		streak = 1
	case user.LastActiveDate.Format(util.DateFormat) == today:
		// 今天已经记过了
	case user.LastActiveDate.Format(util.DateFormat) == now.AddDate(0, 0, -1).Format(util.DateFormat):
		streak++
	default:
		streak = 1
	}

	if err := s.UserRepo.UpdateStreak(userID, streak, now); err != nil {
		return 0, err
	}
	return streak, nil
}

func (s *PracticeService) refreshOverallAccuracy(userID uint) error {
	total, err := s.AttemptRepo.CountByUser(userID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	correct, err := s.AttemptRepo.CountCorrectByUser(userID)
	if err != nil {
		return err
	}
	accuracy := int(math.Round(float64(correct) * 100 / float64(total)))
	return s.UserRepo.UpdateOverallAccuracy(userID, accuracy)
}
