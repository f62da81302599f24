package editor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gypsumplanner/internal/model"
	"gypsumplanner/internal/service/project"
	"gypsumplanner/internal/storage"
)

type countingAdapter struct {
	*storage.Memory
	sets atomic.Int32
}

func (c *countingAdapter) Set(ctx context.Context, key string, value []byte) error {
	c.sets.Add(1)
	return c.Memory.Set(ctx, key, value)
}

func setup(t *testing.T, delay time.Duration) (*Editor, *countingAdapter) {
	t.Helper()
	adapter := &countingAdapter{Memory: storage.NewMemory()}
	store := project.NewStore(adapter)
	require.NoError(t, store.Load())
	return New(store, delay), adapter
}

func activeTask(t *testing.T, e *Editor, areaIndex, taskIndex int) model.Task {
	t.Helper()
	p, ok := e.Store().Active()
	require.True(t, ok)
	return p.Areas[areaIndex].Tasks[taskIndex]
}

// TestSubmitCoalesces 测试静默期内的连续编辑只提交最后一次
func TestSubmitCoalesces(t *testing.T) {
	e, adapter := setup(t, 200*time.Millisecond)
	task, _, err := e.AddTask(0)
	require.NoError(t, err)
	before := adapter.sets.Load()

	for _, v := range []string{"2", "20", "202", "2024-06-01"} {
		require.NoError(t, e.Submit(Edit{TaskID: task.ID, Field: project.FieldStartDate, Value: v}))
	}
	assert.Equal(t, 1, e.Pending())
	assert.Empty(t, activeTask(t, e, 0, 0).StartDate)

	require.Eventually(t, func() bool {
		p, _ := e.Store().Active()
		return p.Areas[0].Tasks[0].StartDate == "2024-06-01"
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, e.Pending())
	assert.Equal(t, before+1, adapter.sets.Load())
}

// TestSubmitSeparateFields 测试不同字段分别防抖
func TestSubmitSeparateFields(t *testing.T) {
	e, _ := setup(t, time.Hour)
	task, _, err := e.AddTask(0)
	require.NoError(t, err)

	require.NoError(t, e.Submit(Edit{TaskID: task.ID, Field: project.FieldStartDate, Value: "2024-06-01"}))
	require.NoError(t, e.Submit(Edit{TaskID: task.ID, Field: project.FieldEndDate, Value: "2024-06-05"}))
	require.NoError(t, e.Submit(Edit{TaskID: task.ID, Field: project.FieldTeam, Value: "Plumbing"}))
	assert.Equal(t, 3, e.Pending())

	assert.Equal(t, 3, e.Flush())
	got := activeTask(t, e, 0, 0)
	assert.Equal(t, "2024-06-01", got.StartDate)
	assert.Equal(t, "2024-06-05", got.EndDate)
	assert.Equal(t, model.TeamPlumbing, got.Team)
}

// TestSubmitAreaName 测试区域名称编辑
func TestSubmitAreaName(t *testing.T) {
	e, _ := setup(t, time.Hour)
	area, err := e.AddArea()
	require.NoError(t, err)

	require.NoError(t, e.Submit(Edit{AreaID: area.ID, Field: project.FieldAreaName, Value: "Hall"}))
	e.Flush()

	p, _ := e.Store().Active()
	assert.Equal(t, "Hall", p.Areas[1].Name)
}

// TestSubmitInvalid 测试非法编辑在登记时即被拒绝
func TestSubmitInvalid(t *testing.T) {
	e, _ := setup(t, time.Hour)

	assert.ErrorIs(t, e.Submit(Edit{Field: project.FieldAreaName, Value: "x"}), ErrInvalidEdit)
	assert.ErrorIs(t, e.Submit(Edit{AreaID: "a", Field: project.FieldTeam, Value: "AC"}), ErrInvalidEdit)
	assert.ErrorIs(t, e.Submit(Edit{TaskID: "t", Field: project.FieldAreaName, Value: "x"}), ErrInvalidEdit)
	assert.ErrorIs(t, e.Submit(Edit{TaskID: "t", Field: project.FieldTeam, Value: "Roofing"}), project.ErrInvalidTeam)
	assert.Equal(t, 0, e.Pending())
}

// TestStructuralOpFlushesPending 测试结构性操作前先提交待提交编辑
func TestStructuralOpFlushesPending(t *testing.T) {
	e, _ := setup(t, time.Hour)
	task, _, err := e.AddTask(0)
	require.NoError(t, err)

	require.NoError(t, e.Submit(Edit{TaskID: task.ID, Field: project.FieldTeam, Value: "AC"}))
	_, _, err = e.AddTask(0)
	require.NoError(t, err)

	assert.Equal(t, 0, e.Pending())
	assert.Equal(t, model.TeamAC, activeTask(t, e, 0, 0).Team)
}

// TestCommitAfterDeleteIsHarmless 测试目标任务已删除时提交失败但不影响其他数据
func TestCommitAfterDeleteIsHarmless(t *testing.T) {
	e, _ := setup(t, time.Hour)
	task, _, err := e.AddTask(0)
	require.NoError(t, err)
	require.NoError(t, e.DeleteTaskByID(task.ID))

	require.NoError(t, e.Submit(Edit{TaskID: task.ID, Field: project.FieldTeam, Value: "AC"}))
	assert.Equal(t, 1, e.Flush())

	p, _ := e.Store().Active()
	assert.Empty(t, p.Areas[0].Tasks)
}

// TestScenarioKitchen 测试完整编辑流程
func TestScenarioKitchen(t *testing.T) {
	e, _ := setup(t, time.Hour)

	_, err := e.CreateProject("Kitchen")
	require.NoError(t, err)
	_, err = e.AddArea()
	require.NoError(t, err)
	_, ok, err := e.AddTask(1)
	require.NoError(t, err)
	require.True(t, ok)

	for field, value := range map[project.Field]string{
		project.FieldTeam:      "Plumbing",
		project.FieldStartDate: "2024-06-01",
		project.FieldEndDate:   "2024-06-05",
	} {
		ok, err := e.UpdateField(1, 0, field, value)
		require.NoError(t, err)
		require.True(t, ok)
	}

	got := activeTask(t, e, 1, 0)
	assert.Equal(t, model.TeamPlumbing, got.Team)
	assert.Equal(t, "2024-06-01", got.StartDate)
	assert.Equal(t, "2024-06-05", got.EndDate)
}
