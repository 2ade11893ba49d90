package service

import (
	"context"
	"sync"
	"time"

	"examprep_backend/internal/model"
	"examprep_backend/internal/planner"
	"examprep_backend/internal/util"
	"examprep_backend/pkg/logger"
	"examprep_backend/pkg/monitoring"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 数据不足以出计划的门槛，低于这个量先引导做诊断测试
const (
	minQuestionsForPlan = 10
	minTopicsForPlan    = 3
)

const (
	defaultDaysToExam = 180
	sinkWriteTimeout  = 5 * time.Second
)

// SnapshotSource 一次规划所需的三类读，生产实现走 gorm
type SnapshotSource interface {
	Profile(ctx context.Context, userID uint) (*model.User, error)
	TopicMastery(ctx context.Context, userID uint) ([]model.TopicMastery, error)
	QuestionCount(ctx context.Context, userID uint) (int64, error)
}

// CompletionStore 每天已完成任务 ID 的集合，Redis 或进程内实现
type CompletionStore interface {
	Completed(ctx context.Context, userID uint, date string) ([]string, error)
	Save(ctx context.Context, userID uint, date string, taskIDs []string) error
	Clear(ctx context.Context, userID uint, date string) error
}

// TaskSink 勾选状态的异步落库，重建时用已落库的记录兜底缓存丢失
type TaskSink interface {
	UpsertTaskState(ctx context.Context, record *model.PlannerTaskRecord) error
	ListCompletedInRange(userID uint, from, to string) ([]model.PlannerTaskRecord, error)
}

// SettingsStore 学习设置回写
type SettingsStore interface {
	UpdateSettings(id uint, dailyStudyHours float64, examDate *time.Time) error
}

// PlannerState 一次规划会话的完整视图。整份状态每次重建，
// 唯一跨次保留的是完成记录，按任务 ID 合并回来。
type PlannerState struct {
	NeedsDiagnostic bool                       `json:"needsDiagnostic"`
	DaysToExam      int                        `json:"daysToExam"`
	Narrative       string                     `json:"narrative"`
	Allocation      planner.TimeAllocation     `json:"allocation"`
	Today           planner.DayPlan            `json:"today"`
	Week            []planner.DayPlan          `json:"week"`
	RevisionQueue   []planner.RevisionItem     `json:"revisionQueue"`
	Subjects        []planner.SubjectBreakdown `json:"subjects"`
	Wins            []planner.WeeklyWin        `json:"wins"`
	Stats           planner.Stats              `json:"stats"`
	GeneratedAt     time.Time                  `json:"generatedAt"`
}

// plannerSession 单个用户的会话缓存。loadMu 保证同一用户同时只有
// 一次重建在跑；seq 单调递增，过期的重建结果不准覆盖新的。
type plannerSession struct {
	mu      sync.Mutex
	loadMu  sync.Mutex
	state   *PlannerState
	lastSeq uint64
	nextSeq uint64
}

type PlannerService struct {
	Snapshots   SnapshotSource
	Completions CompletionStore
	Sink        TaskSink
	Settings    SettingsStore

	mu       sync.Mutex
	sessions map[uint]*plannerSession
	now      func() time.Time
}

func NewPlannerService(snapshots SnapshotSource, completions CompletionStore, sink TaskSink, settings SettingsStore) *PlannerService {
	return &PlannerService{
		Snapshots:   snapshots,
		Completions: completions,
		Sink:        sink,
		Settings:    settings,
		sessions:    make(map[uint]*plannerSession),
		now:         time.Now,
	}
}

func (s *PlannerService) session(userID uint) *plannerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &plannerSession{}
		s.sessions[userID] = sess
	}
	return sess
}

// State 返回当前会话状态，没有或已跨天则重建。诊断态不缓存，
// 用户补够练习量后下一次读取就能拿到正式计划
func (s *PlannerService) State(ctx context.Context, userID uint) (*PlannerState, error) {
	sess := s.session(userID)
	today := s.now().Format(util.DateFormat)

	sess.mu.Lock()
	if sess.state != nil && !sess.state.NeedsDiagnostic && sess.state.Today.Date == today {
		state := sess.state
		sess.mu.Unlock()
		return state, nil
	}
	sess.mu.Unlock()

	return s.Reload(ctx, userID)
}

// Reload 丢弃缓存重建整份状态
func (s *PlannerService) Reload(ctx context.Context, userID uint) (*PlannerState, error) {
	return s.reload(ctx, userID, 0)
}

func (s *PlannerService) reload(ctx context.Context, userID uint, todayBudget int) (*PlannerState, error) {
	sess := s.session(userID)

	sess.loadMu.Lock()
	defer sess.loadMu.Unlock()

	sess.mu.Lock()
	sess.nextSeq++
	seq := sess.nextSeq
	sess.mu.Unlock()

	state, err := s.buildState(ctx, userID, todayBudget)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if seq < sess.lastSeq {
		// 已经有更新的结果落地了，这一份作废
		return sess.state, nil
	}
	sess.lastSeq = seq
	sess.state = state
	return state, nil
}

// buildState 整份重建。todayBudget 大于 0 时今天按这个时长重排，
// 其余各天仍用档案预算
func (s *PlannerService) buildState(ctx context.Context, userID uint, todayBudget int) (*PlannerState, error) {
	now := s.now()

	var (
		profile *model.User
		rows    []model.TopicMastery
		qcount  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = s.Snapshots.Profile(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		rows, err = s.Snapshots.TopicMastery(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		qcount, err = s.Snapshots.QuestionCount(gctx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monitoring.PlannerBuilds.Inc()

	if qcount < minQuestionsForPlan || len(rows) < minTopicsForPlan {
		return &PlannerState{
			NeedsDiagnostic: true,
			DaysToExam:      daysToExam(profile, now),
			Narrative:       planner.Narrative(profile.FirstName(), daysToExam(profile, now), 0, 0, 0, now),
			GeneratedAt:     now,
		}, nil
	}

	records := make([]planner.MasteryRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, planner.MasteryRecord{
			Subject:            r.Subject,
			Chapter:            r.Chapter,
			Topic:              r.Topic,
			Accuracy:           r.Accuracy,
			QuestionsAttempted: r.QuestionsAttempted,
			LastPracticed:      r.LastPracticed,
			StuckDays:          r.StuckDays,
		})
	}

	insights := planner.AnalyzeTopics(records, now)
	days := daysToExam(profile, now)
	alloc := planner.AllocateTime(days)
	budget := int(profile.DailyStudyHours * 60)

	week := planner.BuildWeekPlan(insights, alloc, budget, now)
	if todayBudget > 0 {
		week[0] = planner.BuildDayPlan(insights, alloc, todayBudget, now, now)
	}
	persisted := s.persistedCompletions(userID, week[0].Date, week[len(week)-1].Date, week[0].Date)
	for i := range week {
		s.mergeCompletions(ctx, userID, &week[i], persisted[week[i].Date])
	}
	today := week[0]

	streak := profile.CurrentStreak
	stats := planner.BuildStats(insights, streak, profile.CreatedAt, now, today)
	state := &PlannerState{
		DaysToExam:    days,
		Allocation:    alloc,
		Today:         today,
		Week:          week,
		RevisionQueue: planner.BuildRevisionQueue(insights),
		Subjects:      planner.BuildSubjectBreakdowns(insights),
		Wins:          planner.BuildWeeklyWins(insights, streak, int(qcount), weekConsistency(week)),
		Stats:         stats,
		Narrative:     planner.Narrative(profile.FirstName(), days, streak, stats.AverageAccuracy, stats.Weak, now),
		GeneratedAt:   now,
	}
	return state, nil
}

// persistedCompletions 从落库记录回填完成状态，缓存过期或丢失时兜底。
// 只回填今天及更早的日期，未来日期以缓存为准，Replan 清掉后不复活。
func (s *PlannerService) persistedCompletions(userID uint, from, to, today string) map[string][]string {
	records, err := s.Sink.ListCompletedInRange(userID, from, to)
	if err != nil {
		logger.Log.Warn("读取已落库的完成记录失败",
			zap.Uint("userID", userID), zap.Error(err))
		return nil
	}
	byDate := make(map[string][]string)
	for _, r := range records {
		if r.Date > today {
			continue
		}
		byDate[r.Date] = append(byDate[r.Date], r.TaskID)
	}
	return byDate
}

// mergeCompletions 把外部记录的完成状态按任务 ID 合并进新计划。
// 读失败只记日志，当作当天还没有完成记录。
func (s *PlannerService) mergeCompletions(ctx context.Context, userID uint, day *planner.DayPlan, extra []string) {
	ids, err := s.Completions.Completed(ctx, userID, day.Date)
	if err != nil {
		logger.Log.Warn("读取任务完成记录失败",
			zap.Uint("userID", userID), zap.String("date", day.Date), zap.Error(err))
	}
	ids = append(ids, extra...)
	if len(ids) == 0 {
		return
	}
	done := make(map[string]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	day.CompletedMinutes = 0
	for i := range day.Tasks {
		if done[day.Tasks[i].ID] {
			day.Tasks[i].Status = planner.TaskCompleted
			day.CompletedMinutes += day.Tasks[i].AllocatedMinutes
		}
	}
}

// weekConsistency 本周计划任务的完成百分比
func weekConsistency(week []planner.DayPlan) int {
	total, done := 0, 0
	for _, day := range week {
		for _, t := range day.Tasks {
			total++
			if t.Status == planner.TaskCompleted {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

// ToggleTask 乐观勾选：内存状态和完成缓存立即更新，落库异步走，
// 失败只记日志不回滚。
func (s *PlannerService) ToggleTask(ctx context.Context, userID uint, taskID string) (*PlannerState, error) {
	sess := s.session(userID)

	sess.mu.Lock()
	state := sess.state
	if state == nil || state.NeedsDiagnostic {
		sess.mu.Unlock()
		return nil, util.ErrPlanNotLoaded
	}

	var (
		day  *planner.DayPlan
		task *planner.Task
	)
	for i := range state.Week {
		for j := range state.Week[i].Tasks {
			if state.Week[i].Tasks[j].ID == taskID {
				day = &state.Week[i]
				task = &state.Week[i].Tasks[j]
			}
		}
	}
	if task == nil {
		sess.mu.Unlock()
		return nil, util.ErrTaskNotFound
	}

	if task.Status == planner.TaskCompleted {
		task.Status = planner.TaskPending
	} else {
		task.Status = planner.TaskCompleted
	}

	day.CompletedMinutes = 0
	completed := []string{}
	for _, t := range day.Tasks {
		if t.Status == planner.TaskCompleted {
			day.CompletedMinutes += t.AllocatedMinutes
			completed = append(completed, t.ID)
		}
	}
	if day.Date == state.Today.Date {
		state.Today = *day
		state.Stats.TodayCompleted = len(completed)
	}

	record := &model.PlannerTaskRecord{
		UserID:    userID,
		Date:      day.Date,
		Subject:   task.Subject,
		Topic:     task.Topic,
		TaskID:    task.ID,
		TaskType:  string(task.Type),
		Completed: task.Status == planner.TaskCompleted,
		Minutes:   task.AllocatedMinutes,
	}
	date := day.Date
	sess.mu.Unlock()

	monitoring.PlannerToggles.Inc()

	if err := s.Completions.Save(ctx, userID, date, completed); err != nil {
		logger.Log.Warn("写入任务完成缓存失败",
			zap.Uint("userID", userID), zap.String("taskID", taskID), zap.Error(err))
	}

	go func() {
		wctx, cancel := context.WithTimeout(context.Background(), sinkWriteTimeout)
		defer cancel()
		if err := s.Sink.UpsertTaskState(wctx, record); err != nil {
			logger.Log.Warn("任务状态落库失败",
				zap.Uint("userID", userID), zap.String("taskID", taskID), zap.Error(err))
		}
	}()

	return state, nil
}

// Replan 只重排今天：按传入的可用时长重建当日任务，并重置当天的
// 完成状态。availableMinutes 不传（<=0）沿用档案里的每日预算。
func (s *PlannerService) Replan(ctx context.Context, userID uint, availableMinutes int) (*PlannerState, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.NeedsDiagnostic {
		return state, nil
	}

	sess := s.session(userID)
	sess.mu.Lock()
	today := sess.state.Today.Date
	var undo []*model.PlannerTaskRecord
	for _, t := range sess.state.Today.Tasks {
		if t.Status == planner.TaskCompleted {
			undo = append(undo, &model.PlannerTaskRecord{
				UserID:    userID,
				Date:      today,
				Subject:   t.Subject,
				Topic:     t.Topic,
				TaskID:    t.ID,
				TaskType:  string(t.Type),
				Completed: false,
				Minutes:   t.AllocatedMinutes,
			})
		}
	}
	sess.mu.Unlock()

	if err := s.Completions.Clear(ctx, userID, today); err != nil {
		logger.Log.Warn("清除当天完成记录失败",
			zap.Uint("userID", userID), zap.String("date", today), zap.Error(err))
	}
	// 已落库的完成标记同步撤销，不然重建时又会被回填回来
	for _, record := range undo {
		if err := s.Sink.UpsertTaskState(ctx, record); err != nil {
			logger.Log.Warn("撤销任务完成落库失败",
				zap.Uint("userID", userID), zap.String("taskID", record.TaskID), zap.Error(err))
		}
	}

	return s.reload(ctx, userID, availableMinutes)
}

// UpdateSettings 改每日学习时长或考试日期，改完立刻重建计划
func (s *PlannerService) UpdateSettings(ctx context.Context, userID uint, dailyStudyHours float64, examDate *time.Time) (*PlannerState, error) {
	if dailyStudyHours < 1 || dailyStudyHours > 12 {
		return nil, util.ErrInvalidStudyHours
	}
	if err := s.Settings.UpdateSettings(userID, dailyStudyHours, examDate); err != nil {
		return nil, err
	}
	return s.Reload(ctx, userID)
}

func daysToExam(profile *model.User, now time.Time) int {
	if profile.TargetExamDate == nil {
		return defaultDaysToExam
	}
	days := int(profile.TargetExamDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
