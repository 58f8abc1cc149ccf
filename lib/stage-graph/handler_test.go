package stagegraph

import (
	"fmt"
	"sort"
	"testing"

	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStageStore struct {
	stages      map[string]dbmodels.Stage
	assignments map[string]map[models.StageRole][]string
	nextID      int
}

func newFakeStageStore() *fakeStageStore {
	return &fakeStageStore{
		stages:      map[string]dbmodels.Stage{},
		assignments: map[string]map[models.StageRole][]string{},
	}
}

func (f *fakeStageStore) Create(rec dbmodels.Stage) (string, error) {
	for _, existing := range f.stages {
		if existing.RecruitmentID == rec.RecruitmentID && existing.Label == rec.Label {
			return "", gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	rec.ID = fmt.Sprintf("stage-%v", f.nextID)
	f.stages[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStageStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.stages[id]
	if !ok {
		return errors.New("stage not found")
	}
	if value, ok := updMap["stage_type"]; ok {
		rec.StageType = value.(models.StageType)
	}
	if value, ok := updMap["sequence"]; ok {
		rec.Sequence = value.(int)
	}
	f.stages[id] = rec
	return nil
}

func (f *fakeStageStore) GetByID(id string) (*dbmodels.Stage, error) {
	rec, ok := f.stages[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStageStore) GetByLabel(recruitmentID, label string) (*dbmodels.Stage, error) {
	for _, rec := range f.stages {
		if rec.RecruitmentID == recruitmentID && rec.Label == label {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStageStore) GetByType(recruitmentID string, stageType models.StageType) (*dbmodels.Stage, error) {
	var found *dbmodels.Stage
	for _, rec := range f.stages {
		if rec.RecruitmentID != recruitmentID || rec.StageType != stageType {
			continue
		}
		rec := rec
		if found == nil || rec.Sequence < found.Sequence {
			found = &rec
		}
	}
	return found, nil
}

func (f *fakeStageStore) List(recruitmentID string) ([]dbmodels.Stage, error) {
	list := []dbmodels.Stage{}
	for _, rec := range f.stages {
		if rec.RecruitmentID == recruitmentID {
			list = append(list, rec)
		}
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].Sequence < list[b].Sequence
	})
	return list, nil
}

func (f *fakeStageStore) Delete(id string) error {
	delete(f.stages, id)
	delete(f.assignments, id)
	return nil
}

func (f *fakeStageStore) MaxSequence(recruitmentID string) (int, error) {
	maxSequence := 0
	for _, rec := range f.stages {
		if rec.RecruitmentID == recruitmentID && rec.Sequence > maxSequence {
			maxSequence = rec.Sequence
		}
	}
	return maxSequence, nil
}

func (f *fakeStageStore) SetAssignments(stageID string, role models.StageRole, employeeIDs []string) error {
	if f.assignments[stageID] == nil {
		f.assignments[stageID] = map[models.StageRole][]string{}
	}
	f.assignments[stageID][role] = employeeIDs
	return nil
}

func testRecruitment() dbmodels.Recruitment {
	rec := dbmodels.Recruitment{
		Title: "Backend engineer",
		Team: []dbmodels.RecruitmentTeam{
			{RecruitmentID: "rec-1", EmployeeID: "emp-default", Role: models.RecruitmentRoleDefaultManager},
			{RecruitmentID: "rec-1", EmployeeID: "emp-l1", Role: models.RecruitmentRoleL1Interviewer},
			{RecruitmentID: "rec-1", EmployeeID: "emp-l2", Role: models.RecruitmentRoleL2Interviewer},
		},
	}
	rec.ID = "rec-1"
	return rec
}

func TestCreateDefaultStages(t *testing.T) {
	t.Run(`seeds the canonical pipeline with assignments`, func(t *testing.T) {
		store := newFakeStageStore()
		handler := impl{}
		require.Nil(t, handler.createDefaultStages(store, testRecruitment()))

		list, err := store.List("rec-1")
		require.Nil(t, err)
		require.Len(t, list, len(dbmodels.DefaultStages))
		for k, stage := range list {
			require.Equal(t, dbmodels.DefaultStages[k].Label, stage.Label)
			require.Equal(t, dbmodels.DefaultStages[k].Sequence, stage.Sequence)
			require.Equal(t, []string{"emp-default"}, store.assignments[stage.ID][models.StageRoleManager])
		}

		l1, err := store.GetByType("rec-1", models.StageTypeL1Interview)
		require.Nil(t, err)
		require.NotNil(t, l1)
		require.Equal(t, []string{"emp-l1"}, store.assignments[l1.ID][models.StageRoleInterviewer])
	})

	t.Run(`seeding twice does not duplicate stages`, func(t *testing.T) {
		store := newFakeStageStore()
		handler := impl{}
		rec := testRecruitment()
		require.Nil(t, handler.createDefaultStages(store, rec))
		require.Nil(t, handler.createDefaultStages(store, rec))

		list, err := store.List("rec-1")
		require.Nil(t, err)
		require.Len(t, list, len(dbmodels.DefaultStages))
	})
}

func TestEnsureCancelledStage(t *testing.T) {
	t.Run(`created lazily after the normal stages`, func(t *testing.T) {
		store := newFakeStageStore()
		handler := impl{}
		require.Nil(t, handler.createDefaultStages(store, testRecruitment()))

		stage, err := handler.ensureCancelledStage(store, "rec-1")
		require.Nil(t, err)
		require.Equal(t, dbmodels.CancelledStageLabel, stage.Label)
		require.Equal(t, models.StageTypeCancelled, stage.StageType)
		require.Equal(t, dbmodels.CancelledStageSequence, stage.Sequence)

		again, err := handler.ensureCancelledStage(store, "rec-1")
		require.Nil(t, err)
		require.Equal(t, stage.ID, again.ID)

		list, err := store.List("rec-1")
		require.Nil(t, err)
		require.Len(t, list, len(dbmodels.DefaultStages)+1)
	})
}

func TestReorderStages(t *testing.T) {
	list := []dbmodels.Stage{}
	for k, label := range []string{"Sourced", "Test", "Selected"} {
		stage := dbmodels.Stage{Label: label, Sequence: k + 1}
		stage.ID = fmt.Sprintf("stage-%v", k+1)
		list = append(list, stage)
	}

	t.Run(`moves the stage and renumbers the pipeline`, func(t *testing.T) {
		reordered, err := reorderStages(list, "stage-3", 0)
		require.Nil(t, err)
		require.Equal(t, []string{"Selected", "Sourced", "Test"}, stageLabels(reordered))
		for k, stage := range reordered {
			require.Equal(t, k+1, stage.Sequence)
		}
	})

	t.Run(`order past the end appends`, func(t *testing.T) {
		reordered, err := reorderStages(list, "stage-1", 10)
		require.Nil(t, err)
		require.Equal(t, []string{"Test", "Selected", "Sourced"}, stageLabels(reordered))
	})

	t.Run(`unknown stage is reported`, func(t *testing.T) {
		_, err := reorderStages(list, "stage-42", 0)
		require.True(t, domainerrors.IsNotFound(err))
	})
}

func stageLabels(list []dbmodels.Stage) []string {
	labels := make([]string, 0, len(list))
	for _, stage := range list {
		labels = append(labels, stage.Label)
	}
	return labels
}
