package directory

import (
	"ats-backend/db"
	directorystore "ats-backend/lib/directory/store"
	employeestore "ats-backend/lib/employee/store"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"
)

// Provider is the read-only employee directory the pipeline consults for
// authorization checks and notification fan-out.
type Provider interface {
	IsSuperuser(employeeID string) (bool, error)
	IsManagerOfStage(employeeID, stageID string) (bool, error)
	IsRecruitmentManager(employeeID, recruitmentID string) (bool, error)
	EmployeesInSet(ids []string) ([]dbmodels.Employee, error)
	StageManagers(stageID string) ([]dbmodels.Employee, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         directorystore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store         directorystore.Provider
	employeeStore employeestore.Provider
}

func (i impl) IsSuperuser(employeeID string) (bool, error) {
	rec, err := i.employeeStore.GetByID(employeeID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	return rec.IsActive && rec.IsSuperuser, nil
}

func (i impl) IsManagerOfStage(employeeID, stageID string) (bool, error) {
	return i.store.IsStageRole(employeeID, stageID, models.StageRoleManager)
}

func (i impl) IsRecruitmentManager(employeeID, recruitmentID string) (bool, error) {
	return i.store.IsRecruitmentRole(employeeID, recruitmentID, models.RecruitmentRoleManager)
}

func (i impl) EmployeesInSet(ids []string) ([]dbmodels.Employee, error) {
	return i.employeeStore.ListByIDs(ids)
}

func (i impl) StageManagers(stageID string) ([]dbmodels.Employee, error) {
	return i.store.StageEmployees(stageID, models.StageRoleManager)
}
