package service

import (
	"context"
	"testing"
	"time"

	"examprep_backend/internal/model"
	"examprep_backend/internal/planner"
	"examprep_backend/internal/repository"
	"examprep_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) // 周二

type fakeSnapshots struct {
	profile *model.User
	rows    []model.TopicMastery
	qcount  int64
}

func (f *fakeSnapshots) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return f.profile, nil
}

func (f *fakeSnapshots) TopicMastery(ctx context.Context, userID uint) ([]model.TopicMastery, error) {
	return f.rows, nil
}

func (f *fakeSnapshots) QuestionCount(ctx context.Context, userID uint) (int64, error) {
	return f.qcount, nil
}

type fakeSink struct {
	ch        chan *model.PlannerTaskRecord
	persisted []model.PlannerTaskRecord
}

func (f *fakeSink) UpsertTaskState(ctx context.Context, record *model.PlannerTaskRecord) error {
	f.ch <- record
	return nil
}

func (f *fakeSink) ListCompletedInRange(userID uint, from, to string) ([]model.PlannerTaskRecord, error) {
	var out []model.PlannerTaskRecord
	for _, r := range f.persisted {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSettings struct {
	hours    float64
	examDate *time.Time
}

func (f *fakeSettings) UpdateSettings(id uint, dailyStudyHours float64, examDate *time.Time) error {
	f.hours = dailyStudyHours
	f.examDate = examDate
	return nil
}

func testProfile() *model.User {
	examDate := testNow.AddDate(0, 0, 100)
	return &model.User{
		BaseModel:       model.BaseModel{ID: 1, CreatedAt: testNow.AddDate(0, 0, -73)},
		Name:            "Asha Rao",
		DailyStudyHours: 4,
		CurrentStreak:   5,
		TargetExamDate:  &examDate,
	}
}

func testMasteryRows() []model.TopicMastery {
	practiced := func(daysAgo int) *time.Time {
		t := testNow.AddDate(0, 0, -daysAgo)
		return &t
	}
	return []model.TopicMastery{
		{UserID: 1, Subject: "Chemistry", Topic: "Organic", Accuracy: 30, QuestionsAttempted: 20, LastPracticed: practiced(4)},
		{UserID: 1, Subject: "Chemistry", Topic: "Thermo", Accuracy: 45, QuestionsAttempted: 15, LastPracticed: practiced(2)},
		{UserID: 1, Subject: "Biology", Topic: "Genetics", Accuracy: 60, QuestionsAttempted: 30, LastPracticed: practiced(1)},
		{UserID: 1, Subject: "Physics", Topic: "Optics", Accuracy: 82, QuestionsAttempted: 40, LastPracticed: practiced(3)},
	}
}

func newTestPlanner(snapshots *fakeSnapshots, sink TaskSink) *PlannerService {
	s := NewPlannerService(snapshots, repository.NewLocalCompletionCache(), sink, &fakeSettings{})
	s.now = func() time.Time { return testNow }
	return s
}

func TestStateNeedsDiagnostic(t *testing.T) {
	cases := []struct {
		name   string
		rows   []model.TopicMastery
		qcount int64
	}{
		{"too few questions", testMasteryRows(), 5},
		{"too few topics", testMasteryRows()[:2], 50},
		{"brand new user", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestPlanner(&fakeSnapshots{profile: testProfile(), rows: tc.rows, qcount: tc.qcount}, &fakeSink{})

			state, err := s.State(context.Background(), 1)
			require.NoError(t, err)
			assert.True(t, state.NeedsDiagnostic)
			assert.Empty(t, state.Week)
			assert.NotEmpty(t, state.Narrative)
			assert.Equal(t, 100, state.DaysToExam)
		})
	}
}

func TestStateBuildsAndCaches(t *testing.T) {
	s := newTestPlanner(&fakeSnapshots{profile: testProfile(), rows: testMasteryRows(), qcount: 105}, &fakeSink{})

	state, err := s.State(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, state.NeedsDiagnostic)
	require.Len(t, state.Week, 7)
	assert.True(t, state.Today.IsToday)
	assert.NotEmpty(t, state.Today.Tasks)
	assert.NotEmpty(t, state.RevisionQueue)
	assert.NotEmpty(t, state.Subjects)
	assert.Contains(t, state.Narrative, "Asha")
	assert.Equal(t, 100, state.DaysToExam)
	assert.Equal(t, planner.AllocateTime(100), state.Allocation)

	// 同一天内第二次取走缓存
	again, err := s.State(context.Background(), 1)
	require.NoError(t, err)
	assert.Same(t, state, again)

	// Reload 重建出一份新的
	fresh, err := s.Reload(context.Background(), 1)
	require.NoError(t, err)
	assert.NotSame(t, state, fresh)
}

func TestToggleTaskRoundTrip(t *testing.T) {
	sink := &fakeSink{ch: make(chan *model.PlannerTaskRecord, 4)}
	s := newTestPlanner(&fakeSnapshots{profile: testProfile(), rows: testMasteryRows(), qcount: 105}, sink)

	state, err := s.State(context.Background(), 1)
	require.NoError(t, err)
	task := state.Today.Tasks[0]

	state, err = s.ToggleTask(context.Background(), 1, task.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.TaskCompleted, state.Today.Tasks[0].Status)
	assert.Equal(t, task.AllocatedMinutes, state.Today.CompletedMinutes)
	assert.Equal(t, 1, state.Stats.TodayCompleted)

	select {
	case record := <-sink.ch:
		assert.Equal(t, task.ID, record.TaskID)
		assert.True(t, record.Completed)
		assert.Equal(t, state.Today.Date, record.Date)
	case <-time.After(2 * time.Second):
		t.Fatal("落库写入没有发生")
	}

	// 重建后按 ID 合并回完成状态
	fresh, err := s.Reload(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, planner.TaskCompleted, fresh.Today.Tasks[0].Status)
	assert.Equal(t, task.AllocatedMinutes, fresh.Today.CompletedMinutes)

	// 再点一次取消
	fresh, err = s.ToggleTask(context.Background(), 1, task.ID)
	require.NoError(t, err)
	assert.Equal(t, planner.TaskPending, fresh.Today.Tasks[0].Status)
	assert.Zero(t, fresh.Today.CompletedMinutes)
	<-sink.ch
}

func TestToggleTaskErrors(t *testing.T) {
	s := newTestPlanner(&fakeSnapshots{profile: testProfile(), rows: testMasteryRows(), qcount: 105}, &fakeSink{ch: make(chan *model.PlannerTaskRecord, 1)})

	_, err := s.ToggleTask(context.Background(), 1, "whatever")
	assert.Error(t, err) // 还没加载过计划

	_, err = s.State(context.Background(), 1)
	require.NoError(t, err)
	_, err = s.ToggleTask(context.Background(), 1, "no-such-task")
	assert.Error(t, err)
}

func TestUpdateSettings(t *testing.T) {
	settings := &fakeSettings{}
	s := NewPlannerService(&fakeSnapshots{profile: testProfile(), rows: testMasteryRows(), qcount: 105},
		repository.NewLocalCompletionCache(), &fakeSink{ch: make(chan *model.PlannerTaskRecord, 1)}, settings)
	s.now = func() time.Time { return testNow }

	_, err := s.UpdateSettings(context.Background(), 1, 0.5, nil)
	assert.Error(t, err)
	_, err = s.UpdateSettings(context.Background(), 1, 13, nil)
	assert.Error(t, err)

	state, err := s.UpdateSettings(context.Background(), 1, 6, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, settings.hours)
	assert.False(t, state.NeedsDiagnostic)
}

func TestPersistedCompletionsBackfillCache(t *testing.T) {
	snapshots := &fakeSnapshots{profile: testProfile(), rows: testMasteryRows(), qcount: 105}

	// 先建一次拿到确定性的任务 ID
	baseline, err := newTestPlanner(snapshots, &fakeSink{}).State(context.Background(), 1)
	require.NoError(t, err)
	todayTask := baseline.Today.Tasks[0]
	var futureDay planner.DayPlan
	for _, day := range baseline.Week[1:] {
		if len(day.Tasks) > 0 {
			futureDay = day
			break
		}
	}
	require.NotEmpty(t, futureDay.Date)

	// 缓存是空的，只有落库记录；未来日期的记录不回填
	sink := &fakeSink{persisted: []model.PlannerTaskRecord{
		{UserID: 1, Date: baseline.Today.Date, TaskID: todayTask.ID, Completed: true},
		{UserID: 1, Date: futureDay.Date, TaskID: futureDay.Tasks[0].ID, Completed: true},
	}}
	state, err := newTestPlanner(snapshots, sink).State(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, planner.TaskCompleted, state.Today.Tasks[0].Status)
	assert.Equal(t, todayTask.AllocatedMinutes, state.Today.CompletedMinutes)
	for _, day := range state.Week[1:] {
		for _, task := range day.Tasks {
			assert.Equal(t, planner.TaskPending, task.Status)
		}
	}
}

func TestReplanRebuildsTodayWithNewBudget(t *testing.T) {
	cache := repository.NewLocalCompletionCache()
	sink := &fakeSink{ch: make(chan *model.PlannerTaskRecord, 8)}
	s := NewPlannerService(&fakeSnapshots{profile: testProfile(), rows: testMasteryRows(), qcount: 105},
		cache, sink, &fakeSettings{})
	s.now = func() time.Time { return testNow }

	state, err := s.State(context.Background(), 1)
	require.NoError(t, err)
	toggled := state.Today.Tasks[0]

	// 勾掉今天的一个任务，等落库完成
	_, err = s.ToggleTask(context.Background(), 1, toggled.ID)
	require.NoError(t, err)
	<-sink.ch

	// 后天也勾一个，重排今天不应动它
	var futureTask planner.Task
	for _, day := range state.Week[1:] {
		if len(day.Tasks) > 0 {
			futureTask = day.Tasks[0]
			_, err = s.ToggleTask(context.Background(), 1, futureTask.ID)
			require.NoError(t, err)
			<-sink.ch
			break
		}
	}
	require.NotEmpty(t, futureTask.ID)

	state, err = s.Replan(context.Background(), 1, 90)
	require.NoError(t, err)

	// 今天按 90 分钟重排，完成状态清零
	assert.LessOrEqual(t, state.Today.TotalMinutes, 90)
	assert.Zero(t, state.Today.CompletedMinutes)
	assert.Zero(t, state.Stats.TodayCompleted)
	for _, task := range state.Today.Tasks {
		assert.Equal(t, planner.TaskPending, task.Status)
	}
	todayIDs, _ := cache.Completed(context.Background(), 1, state.Today.Date)
	assert.Empty(t, todayIDs)

	// 已落库的完成标记被撤销
	record := <-sink.ch
	assert.Equal(t, toggled.ID, record.TaskID)
	assert.False(t, record.Completed)

	// 未来那天的完成状态原样保留
	var found bool
	for _, day := range state.Week[1:] {
		for _, task := range day.Tasks {
			if task.ID == futureTask.ID {
				assert.Equal(t, planner.TaskCompleted, task.Status)
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestStateRecoversOnceDataSuffices(t *testing.T) {
	snapshots := &fakeSnapshots{profile: testProfile(), rows: nil, qcount: 0}
	s := newTestPlanner(snapshots, &fakeSink{})

	state, err := s.State(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, state.NeedsDiagnostic)

	// 练够之后下一次自然读取就拿到正式计划，不需要手动重排
	snapshots.rows = testMasteryRows()
	snapshots.qcount = 105
	state, err = s.State(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, state.NeedsDiagnostic)
	require.Len(t, state.Week, 7)
}
