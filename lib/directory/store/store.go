package directorystore

import (
	"ats-backend/models"
	dbmodels "ats-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	IsStageRole(employeeID, stageID string, role models.StageRole) (bool, error)
	IsRecruitmentRole(employeeID, recruitmentID string, role models.RecruitmentRole) (bool, error)
	StageEmployees(stageID string, role models.StageRole) ([]dbmodels.Employee, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) IsStageRole(employeeID, stageID string, role models.StageRole) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.StageAssignment{}).
		Select("count(*) > 0").
		Where("stage_id = ?", stageID).
		Where("employee_id = ?", employeeID).
		Where("role = ?", role).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) IsRecruitmentRole(employeeID, recruitmentID string, role models.RecruitmentRole) (bool, error) {
	var exists bool
	err := i.db.Model(&dbmodels.RecruitmentTeam{}).
		Select("count(*) > 0").
		Where("recruitment_id = ?", recruitmentID).
		Where("employee_id = ?", employeeID).
		Where("role = ?", role).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) StageEmployees(stageID string, role models.StageRole) (list []dbmodels.Employee, err error) {
	list = []dbmodels.Employee{}
	err = i.db.
		Model(&dbmodels.Employee{}).
		Joins("join stage_assignments as a on a.employee_id = employees.id").
		Where("a.stage_id = ?", stageID).
		Where("a.role = ?", role).
		Where("employees.is_active = true").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
