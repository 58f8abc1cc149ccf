package pipeline

import (
	"testing"
	"time"

	"ats-backend/config"
	applicationstore "ats-backend/lib/application/store"
	employeestore "ats-backend/lib/employee/store"
	recruitmentstore "ats-backend/lib/recruitment/store"
	stagegraph "ats-backend/lib/stage-graph"
	stagestore "ats-backend/lib/stage-graph/store"
	domainerrors "ats-backend/lib/utils/domain-errors"
	"ats-backend/models"
	pipelineapimodels "ats-backend/models/api/pipeline"
	dbmodels "ats-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeApplicationStore struct {
	applicationstore.Provider
	recs map[string]*dbmodels.CandidateApplication
}

func (f *fakeApplicationStore) GetByID(id string) (*dbmodels.CandidateApplication, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeApplicationStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.recs[id]
	if !ok {
		return errors.New("application not found")
	}
	for key, value := range updMap {
		switch key {
		case "stage_id":
			stageID := value.(string)
			rec.StageID = &stageID
		case "hired":
			rec.Hired = value.(bool)
		case "canceled":
			rec.Canceled = value.(bool)
		case "start_onboard":
			rec.StartOnboard = value.(bool)
		case "sequence":
			rec.Sequence = value.(int)
		case "schedule_date":
			rec.ScheduleDate, _ = value.(*time.Time)
		case "hired_date":
			date := value.(time.Time)
			rec.HiredDate = &date
		case "converted":
			rec.Converted = value.(bool)
		case "converted_employee_id":
			employeeID := value.(string)
			rec.ConvertedEmployeeID = &employeeID
		}
	}
	return nil
}

func (f *fakeApplicationStore) CountInStage(stageID string, excludeCanceled bool) (int64, error) {
	var count int64
	for _, rec := range f.recs {
		if rec.StageID == nil || *rec.StageID != stageID {
			continue
		}
		if excludeCanceled && rec.Canceled {
			continue
		}
		count++
	}
	return count, nil
}

type fakeStageStore struct {
	stagestore.Provider
	stages map[string]dbmodels.Stage
}

func (f *fakeStageStore) GetByID(id string) (*dbmodels.Stage, error) {
	rec, ok := f.stages[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

type fakeRecruitmentStore struct {
	recruitmentstore.Provider
	recs map[string]*dbmodels.Recruitment
}

func (f *fakeRecruitmentStore) GetByID(id string) (*dbmodels.Recruitment, error) {
	return f.recs[id], nil
}

type fakeEmployeeStore struct {
	byEmail map[string]dbmodels.Employee
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) {
	if _, exists := f.byEmail[rec.Email]; exists {
		return "", gorm.ErrDuplicatedKey
	}
	rec.ID = "emp-created"
	f.byEmail[rec.Email] = rec
	return rec.ID, nil
}

func (f *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeStore) GetByEmail(email string) (*dbmodels.Employee, error) {
	rec, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeEmployeeStore) ListByIDs(ids []string) ([]dbmodels.Employee, error) {
	return nil, nil
}

type fakeDirectory struct {
	superusers    map[string]bool
	stageManagers map[string][]string
	recManagers   map[string][]string
}

func (f *fakeDirectory) IsSuperuser(employeeID string) (bool, error) {
	return f.superusers[employeeID], nil
}

func (f *fakeDirectory) IsManagerOfStage(employeeID, stageID string) (bool, error) {
	return hasID(f.stageManagers[stageID], employeeID), nil
}

func (f *fakeDirectory) IsRecruitmentManager(employeeID, recruitmentID string) (bool, error) {
	return hasID(f.recManagers[recruitmentID], employeeID), nil
}

func (f *fakeDirectory) EmployeesInSet(ids []string) ([]dbmodels.Employee, error) {
	return nil, nil
}

func (f *fakeDirectory) StageManagers(stageID string) ([]dbmodels.Employee, error) {
	list := make([]dbmodels.Employee, 0)
	for _, id := range f.stageManagers[stageID] {
		rec := dbmodels.Employee{}
		rec.ID = id
		list = append(list, rec)
	}
	return list, nil
}

func hasID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type historyRecord struct {
	applicationID string
	stageID       string
	action        models.HistoryAction
}

type fakeHistory struct {
	saved     []historyRecord
	schedules map[string]*time.Time
}

func (f *fakeHistory) Save(applicationID, recruitmentID, stageID, userID string, action models.HistoryAction, description string, scheduleDate *time.Time) {
	f.saved = append(f.saved, historyRecord{applicationID: applicationID, stageID: stageID, action: action})
}

func (f *fakeHistory) List(applicationID string, filter dbmodels.ApplicationHistoryFilter) ([]dbmodels.ApplicationHistory, error) {
	return nil, nil
}

func (f *fakeHistory) ScheduleDateOnStage(applicationID, stageID string) (*time.Time, error) {
	return f.schedules[applicationID+"/"+stageID], nil
}

type fakeBoardView struct {
	invalidated []string
}

func (f *fakeBoardView) Board(recruitmentID string) (pipelineapimodels.BoardView, error) {
	return pipelineapimodels.BoardView{}, nil
}

func (f *fakeBoardView) Invalidate(recruitmentID string) {
	f.invalidated = append(f.invalidated, recruitmentID)
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(actorName string, recipients []dbmodels.Employee, message, redirectHint string) {
	f.messages = append(f.messages, message)
}

type fakeStageGraph struct {
	stagegraph.Provider
	stageStore *fakeStageStore
}

func (f *fakeStageGraph) EnsureCancelledStage(tx *gorm.DB, recruitmentID string) (dbmodels.Stage, error) {
	for _, stage := range f.stageStore.stages {
		if stage.RecruitmentID == recruitmentID && stage.StageType == models.StageTypeCancelled {
			return stage, nil
		}
	}
	stage := dbmodels.Stage{
		RecruitmentID: recruitmentID,
		Label:         "Cancelled Candidates",
		StageType:     models.StageTypeCancelled,
		Sequence:      50,
	}
	stage.ID = "stage-cancelled-" + recruitmentID
	f.stageStore.stages[stage.ID] = stage
	return stage, nil
}

type engineFixture struct {
	engine       impl
	apps         *fakeApplicationStore
	stageStore   *fakeStageStore
	recruitments *fakeRecruitmentStore
	employees    *fakeEmployeeStore
	directory    *fakeDirectory
	history      *fakeHistory
	board        *fakeBoardView
	notify       *fakeNotifier
}

func newEngineFixture() *engineFixture {
	if config.Conf == nil {
		config.Conf = &config.Configuration{}
	}
	f := &engineFixture{
		apps:         &fakeApplicationStore{recs: map[string]*dbmodels.CandidateApplication{}},
		stageStore:   &fakeStageStore{stages: map[string]dbmodels.Stage{}},
		recruitments: &fakeRecruitmentStore{recs: map[string]*dbmodels.Recruitment{}},
		employees:    &fakeEmployeeStore{byEmail: map[string]dbmodels.Employee{}},
		directory: &fakeDirectory{
			superusers:    map[string]bool{},
			stageManagers: map[string][]string{},
			recManagers:   map[string][]string{},
		},
		history: &fakeHistory{schedules: map[string]*time.Time{}},
		board:   &fakeBoardView{},
		notify:  &fakeNotifier{},
	}
	f.engine = impl{
		store:         f.apps,
		stageStore:    f.stageStore,
		employeeStore: f.employees,
		directory:     f.directory,
		stages:        &fakeStageGraph{stageStore: f.stageStore},
		history:       f.history,
		view:          f.board,
		notify:        f.notify,
		runInTx: func(fn func(tx *gorm.DB) error) error {
			return fn(nil)
		},
		applications: func(tx *gorm.DB) applicationstore.Provider {
			return f.apps
		},
		recruitments: func(tx *gorm.DB) recruitmentstore.Provider {
			return f.recruitments
		},
		employees: func(tx *gorm.DB) employeestore.Provider {
			return f.employees
		},
	}
	return f
}

func (f *engineFixture) addStage(id, recruitmentID string, stageType models.StageType, label string) dbmodels.Stage {
	stage := dbmodels.Stage{
		RecruitmentID: recruitmentID,
		Label:         label,
		StageType:     stageType,
	}
	stage.ID = id
	f.stageStore.stages[id] = stage
	return stage
}

func (f *engineFixture) addApplication(id, recruitmentID, stageID string) *dbmodels.CandidateApplication {
	rec := &dbmodels.CandidateApplication{
		RecruitmentID: recruitmentID,
		StageID:       &stageID,
		Name:          "Jane Doe",
		Email:         id + "@example.com",
	}
	rec.ID = id
	f.apps.recs[id] = rec
	return rec
}

func TestMoveStage(t *testing.T) {
	t.Run(`a move derives the flags and restores the interview date`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-src", "rec-1", models.StageTypeSourced, "Sourced")
		f.addStage("stage-sel", "rec-1", models.StageTypeSelected, "Selected")
		app := f.addApplication("app-1", "rec-1", "stage-src")
		app.StartOnboard = true
		app.Recruitment = &dbmodels.Recruitment{Vacancy: 2}
		restored := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
		f.history.schedules["app-1/stage-sel"] = &restored
		f.directory.superusers["boss"] = true

		result, err := f.engine.MoveStage("boss", "app-1", "stage-sel")
		require.Nil(t, err)
		require.True(t, result.Hired)
		require.False(t, result.Canceled)
		require.Empty(t, result.Advisory)

		moved := f.apps.recs["app-1"]
		require.Equal(t, "stage-sel", *moved.StageID)
		require.True(t, moved.Hired)
		require.False(t, moved.StartOnboard)
		require.NotNil(t, moved.HiredDate)
		require.Equal(t, restored, *moved.ScheduleDate)

		require.Len(t, f.history.saved, 1)
		require.Equal(t, models.HistoryActionStageChanged, f.history.saved[0].action)
		require.Equal(t, []string{"rec-1"}, f.board.invalidated)
		require.Len(t, f.notify.messages, 1)
	})

	t.Run(`a filled vacancy raises the advisory but never blocks`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-sel", "rec-1", models.StageTypeSelected, "Selected")
		app := f.addApplication("app-1", "rec-1", "stage-other")
		app.Recruitment = &dbmodels.Recruitment{Vacancy: 1}
		f.directory.superusers["boss"] = true

		result, err := f.engine.MoveStage("boss", "app-1", "stage-sel")
		require.Nil(t, err)
		require.Equal(t, pipelineapimodels.AdvisoryVacancyFilled, result.Advisory)
		require.Equal(t, 1, result.Vacancy)
		require.Equal(t, "stage-sel", *f.apps.recs["app-1"].StageID)
	})

	t.Run(`unknown stage`, func(t *testing.T) {
		f := newEngineFixture()
		_, err := f.engine.MoveStage("boss", "app-1", "nope")
		require.True(t, domainerrors.IsNotFound(err))
	})
}

func TestMoveStageAuthorization(t *testing.T) {
	t.Run(`a denied move leaves the application untouched`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-sel", "rec-1", models.StageTypeSelected, "Selected")
		before := *f.addApplication("app-1", "rec-1", "stage-src")

		_, err := f.engine.MoveStage("nobody", "app-1", "stage-sel")
		require.True(t, domainerrors.IsAuthorization(err))

		require.Equal(t, before, *f.apps.recs["app-1"])
		require.Empty(t, f.history.saved)
		require.Empty(t, f.board.invalidated)
		require.Empty(t, f.notify.messages)
	})

	t.Run(`the manager of the target stage is allowed`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-test", "rec-1", models.StageTypeTest, "Test")
		f.addApplication("app-1", "rec-1", "stage-src")
		f.directory.stageManagers["stage-test"] = []string{"manager-1"}

		_, err := f.engine.MoveStage("manager-1", "app-1", "stage-test")
		require.Nil(t, err)
		require.Equal(t, "stage-test", *f.apps.recs["app-1"].StageID)
	})
}

func TestBulkMove(t *testing.T) {
	t.Run(`items succeed and fail independently`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-test", "rec-1", models.StageTypeTest, "Test")
		f.addApplication("app-1", "rec-1", "stage-src")
		f.addApplication("app-2", "rec-1", "stage-src")
		f.directory.superusers["boss"] = true

		results, err := f.engine.BulkMove("boss", "stage-test", []string{"app-1", "missing", "app-2"})
		require.Nil(t, err)
		require.Len(t, results, 3)

		require.Equal(t, pipelineapimodels.BulkStatusSuccess, results[0].Status)
		require.Equal(t, pipelineapimodels.BulkStatusFail, results[1].Status)
		require.Equal(t, "application not found", results[1].Message)
		require.Equal(t, pipelineapimodels.BulkStatusSuccess, results[2].Status)

		require.Equal(t, "stage-test", *f.apps.recs["app-1"].StageID)
		require.Equal(t, "stage-test", *f.apps.recs["app-2"].StageID)
		require.Len(t, f.notify.messages, 1)
	})

	t.Run(`an unauthorized actor fails the whole batch`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-test", "rec-1", models.StageTypeTest, "Test")
		before := *f.addApplication("app-1", "rec-1", "stage-src")

		_, err := f.engine.BulkMove("nobody", "stage-test", []string{"app-1"})
		require.True(t, domainerrors.IsAuthorization(err))
		require.Equal(t, before, *f.apps.recs["app-1"])
	})
}

func TestCancel(t *testing.T) {
	t.Run(`cancellation redirects into the cancelled stage`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-src", "rec-1", models.StageTypeSourced, "Sourced")
		f.addApplication("app-1", "rec-1", "stage-src")
		f.directory.recManagers["rec-1"] = []string{"manager-1"}

		results, err := f.engine.Cancel("manager-1", []string{"app-1"})
		require.Nil(t, err)
		require.Len(t, results, 1)
		require.Equal(t, pipelineapimodels.BulkStatusSuccess, results[0].Status)

		cancelled := f.apps.recs["app-1"]
		require.Equal(t, "stage-cancelled-rec-1", *cancelled.StageID)
		require.True(t, cancelled.Canceled)
		require.False(t, cancelled.Hired)

		require.Len(t, f.history.saved, 1)
		require.Equal(t, models.HistoryActionCancelled, f.history.saved[0].action)
	})

	t.Run(`authorization is checked per item`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-a", "rec-1", models.StageTypeSourced, "Sourced")
		f.addStage("stage-b", "rec-2", models.StageTypeSourced, "Sourced")
		f.addApplication("app-1", "rec-1", "stage-a")
		before := *f.addApplication("app-2", "rec-2", "stage-b")
		f.directory.recManagers["rec-1"] = []string{"manager-1"}

		results, err := f.engine.Cancel("manager-1", []string{"app-1", "app-2", "missing"})
		require.Nil(t, err)
		require.Len(t, results, 3)
		require.Equal(t, pipelineapimodels.BulkStatusSuccess, results[0].Status)
		require.Equal(t, pipelineapimodels.BulkStatusFail, results[1].Status)
		require.Equal(t, pipelineapimodels.BulkStatusFail, results[2].Status)
		require.Equal(t, before, *f.apps.recs["app-2"])
	})
}

func TestReorder(t *testing.T) {
	t.Run(`sequence follows the input order, unknown ids are skipped`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-test", "rec-1", models.StageTypeTest, "Test")
		f.addStage("stage-src", "rec-1", models.StageTypeSourced, "Sourced")
		f.addApplication("app-a", "rec-1", "stage-test").Sequence = 2
		f.addApplication("app-b", "rec-1", "stage-test").Sequence = 0
		f.addApplication("app-c", "rec-1", "stage-src")
		f.directory.superusers["boss"] = true

		_, err := f.engine.Reorder("boss", "stage-test", []string{"app-b", "ghost", "app-a", "app-c"})
		require.Nil(t, err)

		require.Equal(t, 0, f.apps.recs["app-b"].Sequence)
		require.Equal(t, 2, f.apps.recs["app-a"].Sequence)
		require.Equal(t, 3, f.apps.recs["app-c"].Sequence)

		// app-c changed its stage, the others only changed order
		require.Equal(t, "stage-test", *f.apps.recs["app-c"].StageID)
		require.Len(t, f.history.saved, 1)
		require.Equal(t, "app-c", f.history.saved[0].applicationID)
		require.Len(t, f.notify.messages, 1)
	})

	t.Run(`a pure reorder writes no history and sends nothing`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-test", "rec-1", models.StageTypeTest, "Test")
		f.addApplication("app-a", "rec-1", "stage-test").Sequence = 1
		f.addApplication("app-b", "rec-1", "stage-test").Sequence = 0
		f.directory.superusers["boss"] = true

		_, err := f.engine.Reorder("boss", "stage-test", []string{"app-a", "app-b"})
		require.Nil(t, err)
		require.Equal(t, 0, f.apps.recs["app-a"].Sequence)
		require.Equal(t, 1, f.apps.recs["app-b"].Sequence)
		require.Empty(t, f.history.saved)
		require.Empty(t, f.notify.messages)
		require.Equal(t, []string{"rec-1"}, f.board.invalidated)
	})
}

func TestConvertToEmployee(t *testing.T) {
	t.Run(`conversion creates the employee and supersedes the flags`, func(t *testing.T) {
		f := newEngineFixture()
		f.addStage("stage-sel", "rec-1", models.StageTypeSelected, "Selected")
		app := f.addApplication("app-1", "rec-1", "stage-sel")
		app.Hired = true

		employeeID, err := f.engine.ConvertToEmployee("boss", "app-1")
		require.Nil(t, err)
		require.Equal(t, "emp-created", employeeID)

		converted := f.apps.recs["app-1"]
		require.True(t, converted.Converted)
		require.False(t, converted.Hired)
		require.False(t, converted.Canceled)
		require.Equal(t, employeeID, *converted.ConvertedEmployeeID)
	})

	t.Run(`an existing employee with the same email is a conflict`, func(t *testing.T) {
		f := newEngineFixture()
		app := f.addApplication("app-1", "rec-1", "stage-sel")
		f.employees.byEmail[app.Email] = dbmodels.Employee{Email: app.Email}

		_, err := f.engine.ConvertToEmployee("boss", "app-1")
		require.True(t, domainerrors.IsConflict(err))
		require.False(t, f.apps.recs["app-1"].Converted)
	})
}
